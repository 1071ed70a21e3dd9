package repository

import (
	"context"
	"fmt"

	"direct_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository definition message store
type MessageRepository interface {
	// InsertMessage 寫入一筆聊天訊息 (id / timestamp 由 use case 先指定)
	InsertMessage(ctx context.Context, msg *domain.Message) error
	// FindByID 查詢單筆訊息
	FindByID(ctx context.Context, messageID string) (*domain.Message, error)
	// FindRoomMessages 查詢聊天室全部訊息，timestamp 升序
	FindRoomMessages(ctx context.Context, roomID string) ([]domain.Message, error)
	// FindReceiverMessages 查詢某個 receiver 的全部訊息，timestamp 升序
	FindReceiverMessages(ctx context.Context, receiverID string) ([]domain.Message, error)
	// MarkRead 同時設定 is_read 與舊版 read 欄位，重複呼叫效果不變
	MarkRead(ctx context.Context, messageID string) error
}

type chatMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &chatMessageRepository{
		coll: db.Collection("messages"),
	}
}

func (r *chatMessageRepository) InsertMessage(ctx context.Context, msg *domain.Message) error {
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("%w: insert message: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *chatMessageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	var msg domain.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": messageID}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find message: %v", domain.ErrStoreUnavailable, err)
	}
	return &msg, nil
}

func (r *chatMessageRepository) FindRoomMessages(ctx context.Context, roomID string) ([]domain.Message, error) {
	return r.findSorted(ctx, bson.M{"room_id": roomID})
}

func (r *chatMessageRepository) FindReceiverMessages(ctx context.Context, receiverID string) ([]domain.Message, error) {
	return r.findSorted(ctx, bson.M{"receiver_id": receiverID})
}

// findSorted 等值過濾 + timestamp 升序。timestamp 相同時順序不保証
func (r *chatMessageRepository) findSorted(ctx context.Context, filter bson.M) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find messages: %v", domain.ErrStoreUnavailable, err)
	}
	var messages []domain.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("%w: decode messages: %v", domain.ErrStoreUnavailable, err)
	}
	return messages, nil
}

func (r *chatMessageRepository) MarkRead(ctx context.Context, messageID string) error {
	update := bson.M{"$set": bson.M{"is_read": true, "read": true}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": messageID}, update)
	if err != nil {
		return fmt.Errorf("%w: mark read: %v", domain.ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
