package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"direct_chat_service/internal/chat/domain"
	"direct_chat_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PubSub 變更通知介面: 每次訊息寫入後發布 ChangeEvent，訂閱端據此重新查詢
type PubSub interface {
	Publish(channel string, event domain.ChangeEvent) error
	// Subscribe 訂閱 channel，收到事件後呼叫 handler。ctx 取消時停止派送並
	// 釋放底層 listener
	Subscribe(ctx context.Context, channel string, handler func(event domain.ChangeEvent)) error
}

// RedisPubSub definition redis pub/sub change feed
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish 將 event 序列化後，發布到指定 channel
func (r *RedisPubSub) Publish(channel string, event domain.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, channel, data).Err()
}

// Subscribe 訂閱 channel，收到事件後呼叫 handler 處理
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.ChangeEvent)) error {
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var event domain.ChangeEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					logger.Log.Error("change event decode err :", zap.String("err", fmt.Sprintf("failed to unmarshal change event: %v", err)))
					continue
				}
				handler(event)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
				return
			}
		}
	}()
	return nil
}
