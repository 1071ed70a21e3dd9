package domain

import "errors"

// 錯誤分類: use case 層回傳給 caller，不在 repository 重試
var (
	// ErrAuthenticationRequired no current user on the context
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrValidationFailed blank content or sender / current-user mismatch
	ErrValidationFailed = errors.New("validation failed")
	// ErrStoreUnavailable transport / network failure on a store operation
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrRoomNotFound room id absent where required
	ErrRoomNotFound = errors.New("room not found")
	// ErrMessageNotFound message id absent where required
	ErrMessageNotFound = errors.New("message not found")
)
