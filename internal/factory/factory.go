package factory

import (
	"fmt"

	"go-frame-analyzer/internal/analyzer"
	"go-frame-analyzer/internal/config"
	"go-frame-analyzer/internal/detector"
	"go-frame-analyzer/internal/storage"
)

// CreateDetector builds the detector backend named by the configuration.
// Construction is the expensive step (model load); it runs once at
// startup and a failure here is fatal.
func CreateDetector(cfg *config.Config) (analyzer.Detector, error) {
	opts := detector.Options{
		ModelPath:           cfg.ModelPath,
		ConfigPath:          cfg.ModelConfigPath,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		IOUThreshold:        cfg.IOUThreshold,
	}

	switch cfg.Detector {
	case config.DetectorGoCV:
		return detector.NewYOLODetector(opts)
	case config.DetectorRemote:
		return detector.NewRemoteDetector(cfg.DetectorEndpoint, opts), nil
	case config.DetectorStub:
		return detector.NewStubDetector(), nil
	default:
		return nil, fmt.Errorf("unsupported detector kind: %s", cfg.Detector)
	}
}

// CreateFrameSources builds the storage backends for frame references.
// The Azure source is only constructed when credentials are configured.
func CreateFrameSources(cfg *config.Config) (local, http, azure storage.FrameSource, err error) {
	local = storage.NewLocalFrameSource(cfg.FrameRoot)
	http = storage.NewHTTPFrameSource()

	if cfg.AzureAccountName != "" && cfg.AzureAccountKey != "" {
		azure, err = storage.NewAzureFrameSource(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("azure frame source: %w", err)
		}
	}

	return local, http, azure, nil
}
