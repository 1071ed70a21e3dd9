package app

import (
	"context"

	"direct_chat_service/internal/chat/domain"
	"direct_chat_service/internal/chat/repository"
)

// StreamRoomUseCase 聊天室即時快照串流。訂閱端先收到目前全部訊息
// (timestamp 升序)，之後每次該 room 有變更事件就重查一次快照
type StreamRoomUseCase struct {
	msgRepo repository.MessageRepository
	pubSub  repository.PubSub
}

// NewStreamRoomUseCase init room stream use case
func NewStreamRoomUseCase(msgRepo repository.MessageRepository, pubSub repository.PubSub) *StreamRoomUseCase {
	return &StreamRoomUseCase{
		msgRepo: msgRepo,
		pubSub:  pubSub,
	}
}

// Execute 開始串流。先訂閱再查初始快照，兩者之間落地的訊息不會漏掉
// (redis pub/sub 沒有 replay)。初始快照查詢失敗直接回錯誤並釋放訂閱；
// 之後的查詢失敗終止串流並由 Stream.Err 交給 caller，不自動重連
func (uc *StreamRoomUseCase) Execute(ctx context.Context, roomID string) (*Stream[[]domain.Message], error) {
	subCtx, cancel := context.WithCancel(ctx)
	stream := newStream[[]domain.Message](cancel)

	err := uc.pubSub.Subscribe(subCtx, domain.RoomChannel(roomID), func(domain.ChangeEvent) {
		messages, err := uc.msgRepo.FindRoomMessages(subCtx, roomID)
		if err != nil {
			stream.fail(err)
			return
		}
		stream.push(messages)
	})
	if err != nil {
		cancel()
		return nil, err
	}

	snapshot, err := uc.msgRepo.FindRoomMessages(ctx, roomID)
	if err != nil {
		stream.Cancel()
		return nil, err
	}
	stream.pushInitial(snapshot)
	return stream, nil
}

// UnreadTrackerUseCase 單一 recipient 的每-sender 未讀數串流。每次變更都
// 從該 recipient 的全部訊息重新計算，不做增量
type UnreadTrackerUseCase struct {
	msgRepo repository.MessageRepository
	pubSub  repository.PubSub
}

// NewUnreadTrackerUseCase init unread tracker use case
func NewUnreadTrackerUseCase(msgRepo repository.MessageRepository, pubSub repository.PubSub) *UnreadTrackerUseCase {
	return &UnreadTrackerUseCase{
		msgRepo: msgRepo,
		pubSub:  pubSub,
	}
}

// Execute 開始未讀數串流，先訂閱再查初始值 (同 StreamRoomUseCase)。
// map 裡只有未讀數 >= 1 的 sender
func (uc *UnreadTrackerUseCase) Execute(ctx context.Context, userID string) (*Stream[domain.UnreadCounts], error) {
	subCtx, cancel := context.WithCancel(ctx)
	stream := newStream[domain.UnreadCounts](cancel)

	err := uc.pubSub.Subscribe(subCtx, domain.UserChannel(userID), func(domain.ChangeEvent) {
		counts, err := uc.recount(subCtx, userID)
		if err != nil {
			stream.fail(err)
			return
		}
		stream.push(counts)
	})
	if err != nil {
		cancel()
		return nil, err
	}

	counts, err := uc.recount(ctx, userID)
	if err != nil {
		stream.Cancel()
		return nil, err
	}
	stream.pushInitial(counts)
	return stream, nil
}

func (uc *UnreadTrackerUseCase) recount(ctx context.Context, userID string) (domain.UnreadCounts, error) {
	messages, err := uc.msgRepo.FindReceiverMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.CountUnread(messages), nil
}
