package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"go-chi-calculator/internal/apperr"
	"go-chi-calculator/internal/calculator"
)

// EventProcessor recomputes one consumed event.
type EventProcessor interface {
	Process(ctx context.Context, event calculator.CalculationEvent) error
}

// ConsumerService feeds calculation events from Kafka to an EventProcessor.
type ConsumerService struct {
	consumer  Consumer
	processor EventProcessor
	logger    *zap.Logger
}

func NewConsumerService(consumer Consumer, processor EventProcessor, logger *zap.Logger) *ConsumerService {
	return &ConsumerService{
		consumer:  consumer,
		processor: processor,
		logger:    logger,
	}
}

// Start reads messages until ctx is done. A message that cannot be
// processed is logged and skipped.
func (c *ConsumerService) Start(ctx context.Context) error {
	c.logger.Info("calculation event consumer started")

	for {
		msg, err := c.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				c.logger.Info("calculation event consumer stopped", zap.Error(err))
				return nil
			}
			c.logger.Error("failed to read from Kafka", zap.Error(err))
			continue
		}

		_ = c.handle(ctx, *msg)
	}
}

func (c *ConsumerService) handle(ctx context.Context, msg kafkago.Message) error {
	msgCtx := extractTraceContext(ctx, msg.Headers)

	var event calculator.CalculationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		eventsConsumed.WithLabelValues("malformed").Inc()
		c.logger.Error("invalid JSON in calculation event",
			zap.Error(err),
			zap.ByteString("raw_value", msg.Value),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
		return fmt.Errorf("decode calculation event: %w", err)
	}

	if err := c.processor.Process(msgCtx, event); err != nil {
		eventsConsumed.WithLabelValues(apperr.KindOf(err).String()).Inc()
		return err
	}

	eventsConsumed.WithLabelValues("processed").Inc()
	return nil
}

// extractTraceContext continues the producer's trace from message headers.
func extractTraceContext(ctx context.Context, headers []kafkago.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, header := range headers {
		carrier[string(header.Key)] = string(header.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
