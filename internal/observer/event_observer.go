package observer

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-frame-analyzer/internal/logger"
)

// EventType represents the type of analysis event
type EventType string

const (
	// AnalysisStarted when frame analysis begins
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when frame analysis finishes successfully
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisDegraded when a frame analysis was downgraded to the
	// degraded-result floor
	AnalysisDegraded EventType = "analysis_degraded"
	// BatchCompleted when a batch finishes
	BatchCompleted EventType = "batch_completed"
)

// AnalysisEvent describes one lifecycle event of the scoring engine.
type AnalysisEvent struct {
	EventType      EventType     `json:"event_type"`
	RequestID      string        `json:"request_id"`
	Timestamp      time.Time     `json:"timestamp"`
	FramePath      string        `json:"frame_path,omitempty"`
	FrameIndex     int           `json:"frame_index,omitempty"`
	BatchSize      int           `json:"batch_size,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Degraded       bool          `json:"degraded,omitempty"`
	FailureReason  string        `json:"failure_reason,omitempty"`
}

// EventObserver receives analysis events.
type EventObserver interface {
	OnEvent(event AnalysisEvent)
}

// EventPublisher fans events out to registered observers.
type EventPublisher struct {
	mu        sync.RWMutex
	observers []EventObserver
}

// NewEventPublisher creates an empty publisher.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

// Register adds an observer.
func (p *EventPublisher) Register(obs EventObserver) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, obs)
}

// Publish delivers the event to all observers.
func (p *EventPublisher) Publish(event AnalysisEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, obs := range p.observers {
		obs.OnEvent(event)
	}
}

// LoggingObserver writes analysis events to the structured log.
type LoggingObserver struct{}

// NewLoggingObserver creates a logging observer.
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{}
}

func (o *LoggingObserver) OnEvent(event AnalysisEvent) {
	entry := logger.WithFields(logrus.Fields{
		"event_type":         event.EventType,
		"request_id":         event.RequestID,
		"processing_time_ms": event.ProcessingTime.Milliseconds(),
	})
	if event.FramePath != "" {
		entry = entry.WithField("frame_path", event.FramePath)
	}
	if event.BatchSize > 0 {
		entry = entry.WithField("batch_size", event.BatchSize)
	}

	switch event.EventType {
	case AnalysisDegraded:
		entry.WithFields(logrus.Fields{
			"frame_index":    event.FrameIndex,
			"failure_reason": event.FailureReason,
		}).Warn("Frame analysis degraded")
	default:
		entry.Info("Analysis event")
	}
}
