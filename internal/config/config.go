package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DetectorKind selects the detector backend wired at startup.
type DetectorKind string

const (
	DetectorGoCV   DetectorKind = "gocv"
	DetectorRemote DetectorKind = "remote"
	DetectorStub   DetectorKind = "stub"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	FrameFetchTimeout  time.Duration
	MaxRequestBodySize int64
	MaxBatchSize       int
	BatchWorkers       int

	Detector            DetectorKind
	ModelPath           string
	ModelConfigPath     string
	DetectorEndpoint    string
	ConfidenceThreshold float64
	IOUThreshold        float64

	FrameRoot        string
	AzureAccountName string
	AzureAccountKey  string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// LoadFromEnv builds the configuration from environment variables, loading
// a local .env file first when one exists.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		FrameFetchTimeout:  parseDurationOrDefault("FRAME_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		MaxBatchSize:       int(parseIntOrDefault("MAX_BATCH_SIZE", 64)),
		BatchWorkers:       int(parseIntOrDefault("BATCH_WORKERS", 1)),

		Detector:            DetectorKind(getEnvOrDefault("DETECTOR", string(DetectorStub))),
		ModelPath:           getEnvOrDefault("MODEL_PATH", "yolov8n.onnx"),
		ModelConfigPath:     os.Getenv("MODEL_CONFIG_PATH"),
		DetectorEndpoint:    os.Getenv("DETECTOR_ENDPOINT"),
		ConfidenceThreshold: parseFloatOrDefault("CONFIDENCE_THRESHOLD", 0.5),
		IOUThreshold:        parseFloatOrDefault("IOU_THRESHOLD", 0.5),

		FrameRoot:        getEnvOrDefault("FRAME_ROOT", "."),
		AzureAccountName: os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:  os.Getenv("AZURE_ACCOUNT_KEY"),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	switch cfg.Detector {
	case DetectorGoCV, DetectorRemote, DetectorStub:
	default:
		return nil, fmt.Errorf("invalid DETECTOR: %q", cfg.Detector)
	}
	if cfg.Detector == DetectorRemote && cfg.DetectorEndpoint == "" {
		return nil, fmt.Errorf("DETECTOR_ENDPOINT is required when DETECTOR=remote")
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.MaxBatchSize <= 0 {
		return nil, fmt.Errorf("MAX_BATCH_SIZE must be > 0 (got %d)", cfg.MaxBatchSize)
	}
	if cfg.BatchWorkers <= 0 {
		return nil, fmt.Errorf("BATCH_WORKERS must be > 0 (got %d)", cfg.BatchWorkers)
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("CONFIDENCE_THRESHOLD must be in [0,1] (got %f)", cfg.ConfidenceThreshold)
	}
	if cfg.RequestTimeout <= 0 || cfg.FrameFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.FrameFetchTimeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
