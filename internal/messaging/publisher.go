package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
)

type publishJob struct {
	ctx   context.Context
	event calculator.CalculationEvent
}

// Publisher hands calculation events to Kafka without blocking the caller.
// Events wait in a bounded queue drained by Run; when the queue is full,
// or once Run has stopped, the event is dropped.
type Publisher struct {
	producer Producer
	logger   *zap.Logger
	queue    chan publishJob

	// mu orders Publish against the final flush: once stopped is set no
	// event enters the queue.
	mu      sync.RWMutex
	stopped bool
}

// NewPublisher returns a Publisher with room for queueSize pending events.
func NewPublisher(producer Producer, logger *zap.Logger, queueSize int) *Publisher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Publisher{
		producer: producer,
		logger:   logger,
		queue:    make(chan publishJob, queueSize),
	}
}

// Publish enqueues event and returns immediately. The request context is
// kept for its trace but its cancellation does not reach the write.
func (p *Publisher) Publish(ctx context.Context, event calculator.CalculationEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.drop("publisher stopped, dropping calculation event", event)
		return
	}

	select {
	case p.queue <- publishJob{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		p.drop("publish queue full, dropping calculation event", event)
	}
}

func (p *Publisher) drop(msg string, event calculator.CalculationEvent) {
	eventsDropped.Inc()
	p.logger.Warn(msg,
		zap.String("operation", event.Operation),
		zap.String("result", event.Result),
	)
}

// Run writes queued events until ctx is done, then flushes whatever is
// still queued. Cancel ctx only after the HTTP server has shut down, so
// in-flight requests can still publish.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("calculation event publisher started")

	for {
		select {
		case job := <-p.queue:
			p.write(job)
		case <-ctx.Done():
			p.mu.Lock()
			p.stopped = true
			p.mu.Unlock()

			p.flush()
			p.logger.Info("calculation event publisher stopped")
			return nil
		}
	}
}

func (p *Publisher) flush() {
	for {
		select {
		case job := <-p.queue:
			p.write(job)
		default:
			return
		}
	}
}

func (p *Publisher) write(job publishJob) {
	msg, err := encodeMessage(job.event)
	if err != nil {
		eventsFailed.Inc()
		p.logger.Error("failed to encode calculation event", zap.Error(err))
		return
	}

	if err := p.producer.WriteMessage(job.ctx, msg); err != nil {
		eventsFailed.Inc()
		p.logger.Error("failed to publish calculation event",
			zap.String("operation", job.event.Operation),
			zap.Error(err),
		)
		return
	}

	eventsPublished.Inc()
	p.logger.Info("published calculation event",
		zap.String("operation", job.event.Operation),
		zap.String("first", job.event.FirstOperand),
		zap.String("second", job.event.SecondOperand),
		zap.String("result", job.event.Result),
	)
}

// encodeMessage keys the message by operation name.
func encodeMessage(event calculator.CalculationEvent) (kafkago.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("marshal calculation event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Operation),
		Value: payload,
	}, nil
}
