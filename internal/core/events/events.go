// Package events 领域事件发布（order.created / payment.created）
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	OrderCreated   = "order.created"
	PaymentCreated = "payment.created"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
	Close() error
}

// Writer kafka.Writer 的子集，测试可替换
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Kafka struct {
	w   Writer
	now func() time.Time
}

func NewKafkaWriter(brokers []string, topic string, l *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // 同一 key（订单）落同一分区
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			l.Sugar().Errorf("kafka writer: "+msg, args...)
		}),
	}
}

func NewKafka(w Writer) *Kafka { return &Kafka{w: w, now: time.Now} }

func (k *Kafka) Publish(ctx context.Context, eventType, key string, payload any) error {
	b, err := json.Marshal(Event{Type: eventType, Key: key, OccurredAt: k.now().UTC(), Payload: payload})
	if err != nil {
		return err
	}
	return k.w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   b,
		Headers: []kafka.Header{{Key: "type", Value: []byte(eventType)}},
	})
}

func (k *Kafka) Close() error { return k.w.Close() }

// Nop 未配置 broker 时使用
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                       { return nil }
