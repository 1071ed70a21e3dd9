package app

import (
	"context"
	"fmt"
	"time"

	"direct_chat_service/internal/chat/domain"
	"direct_chat_service/internal/chat/repository"
)

// RoomUseCase - 1對1 聊天室建立與查詢
type RoomUseCase struct {
	roomRepo repository.RoomRepository
}

// NewRoomUseCase init room use case
func NewRoomUseCase(r repository.RoomRepository) *RoomUseCase {
	return &RoomUseCase{roomRepo: r}
}

// CreateRoom 建立 (或重置) 1對1 聊天室。room id 由雙方 id 推導，重複呼叫
// 會覆寫 bookkeeping 欄位
func (uc *RoomUseCase) CreateRoom(ctx context.Context, userID1, userID2 string) (string, error) {
	if userID1 == "" || userID2 == "" {
		return "", fmt.Errorf("%w: participant id is empty", domain.ErrValidationFailed)
	}

	room := &domain.Room{
		ID:              domain.RoomID(userID1, userID2),
		Participants:    []string{userID1, userID2},
		CreatedAt:       time.Now().UnixMilli(),
		LastMessage:     "",
		LastMessageTime: 0,
	}

	if err := uc.roomRepo.UpsertRoom(ctx, room); err != nil {
		return "", err
	}
	return room.ID, nil
}

// FindRoom 取得 room bookkeeping (room list preview 用)
func (uc *RoomUseCase) FindRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	return uc.roomRepo.FindByID(ctx, roomID)
}
