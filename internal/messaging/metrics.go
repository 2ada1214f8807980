package messaging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calculator_events_published_total",
		Help: "Calculation events written to Kafka.",
	})
	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calculator_events_dropped_total",
		Help: "Calculation events dropped because the publish queue was full.",
	})
	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calculator_events_failed_total",
		Help: "Calculation events that could not be encoded or written.",
	})
	eventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_events_consumed_total",
		Help: "Calculation events read from Kafka, by outcome.",
	}, []string{"outcome"})
)
