package app

import (
	"context"
	"fmt"
	"time"

	"direct_chat_service/internal/chat/domain"
	"direct_chat_service/internal/chat/identity"
	"direct_chat_service/internal/chat/repository"
	"direct_chat_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendMessageUseCase 負責訊息寫入路徑: 驗證、落地、room bookkeeping、變更通知
type SendMessageUseCase struct {
	roomRepo repository.RoomRepository
	msgRepo  repository.MessageRepository
	pubSub   repository.PubSub
	notifier repository.NotificationPublisher
	identity identity.Provider
}

// NewSendMessageUseCase init send message use case
func NewSendMessageUseCase(
	roomRepo repository.RoomRepository,
	msgRepo repository.MessageRepository,
	pubSub repository.PubSub,
	notifier repository.NotificationPublisher,
	provider identity.Provider,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		roomRepo: roomRepo,
		msgRepo:  msgRepo,
		pubSub:   pubSub,
		notifier: notifier,
		identity: provider,
	}
}

// Execute send message. id 與 timestamp (毫秒) 在這裡指定；訊息落地後再更新
// room bookkeeping，兩筆寫入沒有跨文件交易，第二筆失敗時訊息仍然可見，
// 錯誤照樣回傳、不回滾
func (uc *SendMessageUseCase) Execute(ctx context.Context, senderID, receiverID, content string) (string, error) {
	currentUser, ok := uc.identity.CurrentUserID(ctx)
	if !ok {
		return "", domain.ErrAuthenticationRequired
	}
	if senderID != currentUser {
		return "", fmt.Errorf("%w: sender is not the current user", domain.ErrValidationFailed)
	}
	if receiverID == "" {
		return "", fmt.Errorf("%w: receiver id is empty", domain.ErrValidationFailed)
	}
	content = domain.TrimContent(content)
	if content == "" {
		return "", fmt.Errorf("%w: blank content", domain.ErrValidationFailed)
	}

	roomID := domain.RoomID(senderID, receiverID)
	msg := &domain.Message{
		ID:         uuid.New().String(),
		RoomID:     roomID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now().UnixMilli(),
	}

	if err := uc.msgRepo.InsertMessage(ctx, msg); err != nil {
		return "", err
	}

	participants := []string{senderID, receiverID}
	if err := uc.roomRepo.UpsertLastMessage(ctx, roomID, participants, msg.Content, msg.Timestamp); err != nil {
		return "", err
	}

	uc.publishChange(domain.ChangeEvent{
		RoomID:     roomID,
		MessageID:  msg.ID,
		SenderID:   senderID,
		ReceiverID: receiverID,
	})

	// 推播資料交給外部系統派送，失敗不影響 send
	if uc.notifier != nil {
		notification := domain.MessageNotification{
			SenderName:     senderID,
			ReceiverID:     receiverID,
			MessageContent: msg.Content,
			ChatRoomID:     roomID,
		}
		if err := uc.notifier.Publish(ctx, notification); err != nil {
			logger.Log.Error("notification publish err", zap.String("room_id", roomID), zap.Error(err))
		}
	}

	return msg.ID, nil
}

// MarkRead 已讀: 同時設定 is_read 與舊版 read 欄位，重複標記為 no-op
func (uc *SendMessageUseCase) MarkRead(ctx context.Context, roomID, messageID string) error {
	msg, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.IsRead && msg.Read {
		return nil
	}

	if err := uc.msgRepo.MarkRead(ctx, messageID); err != nil {
		return err
	}

	uc.publishChange(domain.ChangeEvent{
		RoomID:     roomID,
		MessageID:  messageID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
	})
	return nil
}

// publishChange 發布到 room channel 與 receiver channel，訂閱端各自重查快照。
// 發布失敗只記 log，訊息本身已經落地
func (uc *SendMessageUseCase) publishChange(event domain.ChangeEvent) {
	if uc.pubSub == nil {
		return
	}
	if err := uc.pubSub.Publish(domain.RoomChannel(event.RoomID), event); err != nil {
		logger.Log.Error("room change publish err", zap.String("room_id", event.RoomID), zap.Error(err))
	}
	if err := uc.pubSub.Publish(domain.UserChannel(event.ReceiverID), event); err != nil {
		logger.Log.Error("user change publish err", zap.String("receiver_id", event.ReceiverID), zap.Error(err))
	}
}
