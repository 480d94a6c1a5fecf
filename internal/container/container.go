package container

import (
	"fmt"
	"net/http"

	"go-frame-analyzer/internal/analyzer"
	"go-frame-analyzer/internal/config"
	"go-frame-analyzer/internal/factory"
	"go-frame-analyzer/internal/observer"
	"go-frame-analyzer/internal/repository"
	"go-frame-analyzer/internal/service"
	"go-frame-analyzer/internal/transport"
	"go-frame-analyzer/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config        *config.Config
	detector      analyzer.Detector
	frameAnalyzer analyzer.FrameAnalyzer
	frames        repository.FrameRepository
	service       service.FrameAnalysisService
	handler       http.Handler
}

// NewContainer builds the dependency graph: storage sources → repository
// → detector → analyzer → service → handler. The detector is constructed
// exactly once here and injected everywhere that needs it.
func NewContainer(cfg *config.Config) (*Container, error) {
	local, httpSource, azure, err := factory.CreateFrameSources(cfg)
	if err != nil {
		return nil, err
	}
	frames := repository.NewFrameRepository(local, httpSource, azure)

	det, err := factory.CreateDetector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize detector: %w", err)
	}

	defaultProfile, err := analyzer.ProfileByName(analyzer.ProfileService)
	if err != nil {
		return nil, err
	}

	frameAnalyzer := analyzer.NewFrameAnalyzer(det, frames, defaultProfile, cfg.FrameFetchTimeout, cfg.BatchWorkers)

	validator := validation.NewRequestValidatorWithLimits(validation.Limits{
		MaxBatchSize: cfg.MaxBatchSize,
	})

	events := observer.NewEventPublisher()
	events.Register(observer.NewLoggingObserver())

	svc := service.NewFrameAnalysisService(frames, frameAnalyzer, validator, events)
	handler := transport.NewHandler(svc, cfg)

	return &Container{
		config:        cfg,
		detector:      det,
		frameAnalyzer: frameAnalyzer,
		frames:        frames,
		service:       svc,
		handler:       handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases analyzer resources.
func (c *Container) Close() error {
	return c.frameAnalyzer.Close()
}
