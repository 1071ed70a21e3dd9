package app

import (
	"context"
	"errors"
	"testing"

	"direct_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// failingPubSub 訂閱一律失敗
type failingPubSub struct {
	err error
}

func (f failingPubSub) Publish(channel string, event domain.ChangeEvent) error {
	return nil
}

func (f failingPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.ChangeEvent)) error {
	return f.err
}

// TestSubscribeUserNotificationsFailure 訂閱失敗必須回傳錯誤，不能靜默吞掉
// (連線層據此結束連線，而不是整個 session 收不到 notify_message)
func TestSubscribeUserNotificationsFailure(t *testing.T) {
	subErr := errors.New("redis down")
	h := NewChatWebsocketHandler(nil, nil, nil, nil, failingPubSub{err: subErr})

	err := h.subscribeUserNotifications(context.Background(), nil, "alice")

	assert.ErrorIs(t, err, subErr)
}

func TestSubscribeUserNotifications(t *testing.T) {
	h := NewChatWebsocketHandler(nil, nil, nil, nil, newFakePubSub())

	err := h.subscribeUserNotifications(context.Background(), nil, "alice")

	assert.NoError(t, err)
}

// TestEnterRoomGuard room 已存在時只有成員能進
func TestEnterRoomGuard(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	h := NewChatWebsocketHandler(NewRoomUseCase(roomRepo), nil, nil, nil, newFakePubSub())

	roomRepo.On("FindByID", mock.Anything, "alice_bob").
		Return(&domain.Room{ID: "alice_bob", Participants: []string{"alice", "bob"}}, nil)

	assert.NoError(t, h.enterRoomGuard(context.Background(), "alice_bob", "alice"))
	assert.EqualError(t, h.enterRoomGuard(context.Background(), "alice_bob", "mallory"), "not a room participant")
}

// TestEnterRoomGuardRoomNotCreated 還沒 create 的 room 容許直接串流
func TestEnterRoomGuardRoomNotCreated(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	h := NewChatWebsocketHandler(NewRoomUseCase(roomRepo), nil, nil, nil, newFakePubSub())

	roomRepo.On("FindByID", mock.Anything, "alice_bob").
		Return(nil, domain.ErrRoomNotFound)

	assert.NoError(t, h.enterRoomGuard(context.Background(), "alice_bob", "alice"))
}

// TestEnterRoomGuardStoreError 查詢失敗要擋下，store 錯誤不能變成放行
func TestEnterRoomGuardStoreError(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	h := NewChatWebsocketHandler(NewRoomUseCase(roomRepo), nil, nil, nil, newFakePubSub())

	roomRepo.On("FindByID", mock.Anything, "alice_bob").
		Return(nil, domain.ErrStoreUnavailable)

	err := h.enterRoomGuard(context.Background(), "alice_bob", "mallory")

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
