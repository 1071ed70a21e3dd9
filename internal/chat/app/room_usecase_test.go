package app

import (
	"context"
	"testing"

	"direct_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestCreateRoom 建立聊天室: room id 由雙方 id 推導，不吃參數順序
func TestCreateRoom(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	uc := NewRoomUseCase(roomRepo)

	var saved *domain.Room
	roomRepo.On("UpsertRoom", mock.Anything, mock.AnythingOfType("*domain.Room")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Room)
		}).Return(nil)

	roomID, err := uc.CreateRoom(context.Background(), "bob", "alice")

	assert.NoError(t, err)
	assert.Equal(t, "alice_bob", roomID)
	assert.Equal(t, "alice_bob", saved.ID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, saved.Participants)
	assert.Greater(t, saved.CreatedAt, int64(0))
	roomRepo.AssertExpectations(t)
}

// TestCreateRoomResetsBookkeeping 重複建立同一個 room 會覆寫 preview 欄位
func TestCreateRoomResetsBookkeeping(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	uc := NewRoomUseCase(roomRepo)

	var saved *domain.Room
	roomRepo.On("UpsertRoom", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Room)
		}).Return(nil)

	_, err := uc.CreateRoom(context.Background(), "alice", "bob")

	assert.NoError(t, err)
	assert.Equal(t, "", saved.LastMessage)
	assert.Equal(t, int64(0), saved.LastMessageTime)
}

func TestCreateRoomEmptyParticipant(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	uc := NewRoomUseCase(roomRepo)

	_, err := uc.CreateRoom(context.Background(), "", "bob")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = uc.CreateRoom(context.Background(), "alice", "")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	roomRepo.AssertNotCalled(t, "UpsertRoom", mock.Anything, mock.Anything)
}

func TestFindRoom(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	uc := NewRoomUseCase(roomRepo)

	roomRepo.On("FindByID", mock.Anything, "alice_bob").
		Return(&domain.Room{ID: "alice_bob", Participants: []string{"alice", "bob"}}, nil)

	room, err := uc.FindRoom(context.Background(), "alice_bob")

	assert.NoError(t, err)
	assert.Equal(t, "alice_bob", room.ID)
}

func TestFindRoomNotFound(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	uc := NewRoomUseCase(roomRepo)

	roomRepo.On("FindByID", mock.Anything, "alice_carol").
		Return(nil, domain.ErrRoomNotFound)

	_, err := uc.FindRoom(context.Background(), "alice_carol")

	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}
