package app

import (
	"context"
	"sync"

	"direct_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockRoomRepository Mock RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

// UpsertRoom mock upsert room
func (m *MockRoomRepository) UpsertRoom(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

// UpsertLastMessage mock update room bookkeeping
func (m *MockRoomRepository) UpsertLastMessage(ctx context.Context, roomID string, participants []string, content string, timestamp int64) error {
	args := m.Called(ctx, roomID, participants, content, timestamp)
	return args.Error(0)
}

// FindByID mock find room by room id
func (m *MockRoomRepository) FindByID(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// InsertMessage mock insert msg
func (m *MockMessageRepository) InsertMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByID mock find msg by id
func (m *MockMessageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindRoomMessages mock find room msgs sorted by timestamp
func (m *MockMessageRepository) FindRoomMessages(ctx context.Context, roomID string) ([]domain.Message, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindReceiverMessages mock find receiver msgs
func (m *MockMessageRepository) FindReceiverMessages(ctx context.Context, receiverID string) ([]domain.Message, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead mock mark msg read
func (m *MockMessageRepository) MarkRead(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

// MockNotificationPublisher Mock NotificationPublisher
type MockNotificationPublisher struct {
	mock.Mock
}

// Publish mock publish notification
func (m *MockNotificationPublisher) Publish(ctx context.Context, n domain.MessageNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// Close mock close
func (m *MockNotificationPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// fakePubSub 同步派送的 in-memory change feed，取代 redis 做串流測試
type fakePubSub struct {
	mu        sync.Mutex
	handlers  map[string][]func(domain.ChangeEvent)
	published map[string][]domain.ChangeEvent
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{
		handlers:  map[string][]func(domain.ChangeEvent){},
		published: map[string][]domain.ChangeEvent{},
	}
}

func (f *fakePubSub) Publish(channel string, event domain.ChangeEvent) error {
	f.mu.Lock()
	f.published[channel] = append(f.published[channel], event)
	handlers := append([]func(domain.ChangeEvent){}, f.handlers[channel]...)
	f.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
	return nil
}

func (f *fakePubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.ChangeEvent)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[channel] = append(f.handlers[channel], handler)
	return nil
}

func (f *fakePubSub) events(channel string) []domain.ChangeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ChangeEvent{}, f.published[channel]...)
}
