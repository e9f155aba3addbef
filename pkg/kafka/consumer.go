package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Consumer wraps a kafka-go reader and drives a MessageHandler in a loop.
type Consumer struct {
	reader  *kafka.Reader
	handler MessageHandler
	closed  bool
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConsumer(brokers []string, topic, groupID string, handler MessageHandler) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
		Logger:      kafka.LoggerFunc(func(msg string, args ...any) {}),
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
	}, nil
}

// Start consumes until the context is cancelled or the consumer is closed.
// Handler errors do not stop the loop; the subscriber decides what to log.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			kafkaMsg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
					return
				}
				c.mu.Lock()
				closed := c.closed
				c.mu.Unlock()
				if closed {
					return
				}
				continue
			}

			msg := Message{
				Key:       string(kafkaMsg.Key),
				Value:     kafkaMsg.Value,
				Headers:   make(map[string]string, len(kafkaMsg.Headers)),
				Timestamp: kafkaMsg.Time,
			}
			for _, h := range kafkaMsg.Headers {
				msg.Headers[h.Key] = string(h.Value)
			}

			_ = c.handler(ctx, msg)
		}
	}()
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.reader.Close()
	c.wg.Wait()
	return err
}
