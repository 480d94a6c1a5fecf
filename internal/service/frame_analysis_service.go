package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-frame-analyzer/internal/analyzer"
	apperrors "go-frame-analyzer/internal/errors"
	"go-frame-analyzer/internal/observer"
	"go-frame-analyzer/internal/repository"
	"go-frame-analyzer/pkg/models"
	"go-frame-analyzer/pkg/validation"
)

// FrameAnalysisService is the application-facing surface over the
// scoring engine.
type FrameAnalysisService interface {
	// AnalyzeFrame scores one frame. Unlike the batch surface it
	// reports an unresolvable frame reference as a distinct not-found
	// error instead of a degraded result.
	AnalyzeFrame(ctx context.Context, req models.FrameRequest) (*models.FrameAnalysis, error)

	// AnalyzeBatch scores an ordered sequence of frames with per-frame
	// failure isolation; the output preserves input order and length.
	AnalyzeBatch(ctx context.Context, reqs []models.FrameRequest) ([]models.FrameAnalysis, error)

	// Ready reports whether the detector finished initializing.
	Ready() bool
}

type frameAnalysisService struct {
	frames    repository.FrameRepository
	analyzer  analyzer.FrameAnalyzer
	validator *validation.RequestValidator
	events    *observer.EventPublisher
}

// NewFrameAnalysisService creates a new frame analysis service
func NewFrameAnalysisService(
	frames repository.FrameRepository,
	frameAnalyzer analyzer.FrameAnalyzer,
	validator *validation.RequestValidator,
	events *observer.EventPublisher,
) FrameAnalysisService {
	return &frameAnalysisService{
		frames:    frames,
		analyzer:  frameAnalyzer,
		validator: validator,
		events:    events,
	}
}

func (s *frameAnalysisService) AnalyzeFrame(ctx context.Context, req models.FrameRequest) (*models.FrameAnalysis, error) {
	if err := s.validator.ValidateFrameRequest(req); err != nil {
		return nil, apperrors.NewValidationError("invalid frame request", err)
	}
	if err := s.frames.ValidateFrameRef(req.FramePath); err != nil {
		return nil, apperrors.NewValidationError("invalid frame reference", err)
	}
	if !s.analyzer.Ready() {
		return nil, apperrors.NewUnavailableError("detector not initialized", nil)
	}

	requestID := uuid.NewString()
	start := time.Now()

	result := s.analyzer.AnalyzeFrame(ctx, req)

	// The single-frame surface distinguishes "could not resolve the
	// frame" from "analyzed with no detections".
	if result.Degraded && result.FailureReason == models.FailureFrameNotFound {
		s.publishDegraded(requestID, req, result, start)
		return nil, apperrors.NewNotFoundError("frame not found", repository.ErrFrameNotFound)
	}

	if result.Degraded {
		s.publishDegraded(requestID, req, result, start)
	} else {
		s.events.Publish(observer.AnalysisEvent{
			EventType:      observer.AnalysisCompleted,
			RequestID:      requestID,
			Timestamp:      time.Now(),
			FramePath:      req.FramePath,
			FrameIndex:     req.FrameIndex,
			ProcessingTime: time.Since(start),
		})
	}

	return &result, nil
}

func (s *frameAnalysisService) AnalyzeBatch(ctx context.Context, reqs []models.FrameRequest) ([]models.FrameAnalysis, error) {
	if err := s.validator.ValidateBatch(reqs); err != nil {
		return nil, apperrors.NewValidationError("invalid batch request", err)
	}
	if !s.analyzer.Ready() {
		return nil, apperrors.NewUnavailableError("detector not initialized", nil)
	}

	requestID := uuid.NewString()
	start := time.Now()

	results := s.analyzer.AnalyzeBatch(ctx, reqs)

	for i := range results {
		if results[i].Degraded {
			s.publishDegraded(requestID, reqs[i], results[i], start)
		}
	}
	s.events.Publish(observer.AnalysisEvent{
		EventType:      observer.BatchCompleted,
		RequestID:      requestID,
		Timestamp:      time.Now(),
		BatchSize:      len(reqs),
		ProcessingTime: time.Since(start),
	})

	return results, nil
}

func (s *frameAnalysisService) Ready() bool {
	return s.analyzer.Ready()
}

func (s *frameAnalysisService) publishDegraded(requestID string, req models.FrameRequest, result models.FrameAnalysis, start time.Time) {
	s.events.Publish(observer.AnalysisEvent{
		EventType:      observer.AnalysisDegraded,
		RequestID:      requestID,
		Timestamp:      time.Now(),
		FramePath:      req.FramePath,
		FrameIndex:     req.FrameIndex,
		ProcessingTime: time.Since(start),
		Degraded:       true,
		FailureReason:  string(result.FailureReason),
	})
}
