package repository

import (
	"context"
	"fmt"

	"direct_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoomRepository definition chat room bookkeeping store
type RoomRepository interface {
	// UpsertRoom 無條件覆寫整個 room record (create-room 的 overwrite 語義)
	UpsertRoom(ctx context.Context, room *domain.Room) error
	// UpsertLastMessage 更新 last_message / last_message_time，room 不存在時
	// 連 participants / created_at 一起補上
	UpsertLastMessage(ctx context.Context, roomID string, participants []string, content string, timestamp int64) error
	// FindByID find room by id
	FindByID(ctx context.Context, roomID string) (*domain.Room, error)
}

type chatRoomRepository struct {
	coll *mongo.Collection
}

// NewMongoRoomRepository create new mongo room repository
func NewMongoRoomRepository(db *mongo.Database) RoomRepository {
	return &chatRoomRepository{
		coll: db.Collection("rooms"),
	}
}

func (r *chatRoomRepository) UpsertRoom(ctx context.Context, room *domain.Room) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": room.ID}, room, opts); err != nil {
		return fmt.Errorf("%w: upsert room: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *chatRoomRepository) UpsertLastMessage(ctx context.Context, roomID string, participants []string, content string, timestamp int64) error {
	update := bson.M{
		"$set": bson.M{
			"last_message":      content,
			"last_message_time": timestamp,
		},
		"$setOnInsert": bson.M{
			"participants": participants,
			"created_at":   timestamp,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": roomID}, update, opts); err != nil {
		return fmt.Errorf("%w: update room bookkeeping: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *chatRoomRepository) FindByID(ctx context.Context, roomID string) (*domain.Room, error) {
	var room domain.Room
	err := r.coll.FindOne(ctx, bson.M{"_id": roomID}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find room: %v", domain.ErrStoreUnavailable, err)
	}
	return &room, nil
}
