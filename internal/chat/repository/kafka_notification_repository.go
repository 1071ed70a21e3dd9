package repository

import (
	"context"
	"encoding/json"

	"direct_chat_service/internal/chat/domain"

	"github.com/segmentio/kafka-go"
)

// NotificationPublisher 推播資料 producer。實際的裝置推送由外部系統消費
// topic 後處理，這裡只產生資料
type NotificationPublisher interface {
	Publish(ctx context.Context, n domain.MessageNotification) error
	Close() error
}

type kafkaNotificationPublisher struct {
	writer *kafka.Writer
}

// NewKafkaNotificationPublisher create NotificationPublisher over a kafka writer
func NewKafkaNotificationPublisher(writer *kafka.Writer) NotificationPublisher {
	return &kafkaNotificationPublisher{writer: writer}
}

func (p *kafkaNotificationPublisher) Publish(ctx context.Context, n domain.MessageNotification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.ReceiverID),
		Value: data,
	})
}

func (p *kafkaNotificationPublisher) Close() error {
	return p.writer.Close()
}
