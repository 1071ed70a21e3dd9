package identity

import "context"

// Provider 取得目前已驗證的 user id。token 簽發 / 驗證由外部身份系統負責，
// 這裡只消費結果
type Provider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type ctxKey struct{}

// WithUserID 將已驗證的 user id 放進 ctx (auth middleware / ws handler 用)
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// ContextProvider reads the authenticated user id set by WithUserID
type ContextProvider struct{}

// CurrentUserID get current user id from ctx
func (ContextProvider) CurrentUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
