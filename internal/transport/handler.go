package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-frame-analyzer/internal/config"
	apperrors "go-frame-analyzer/internal/errors"
	"go-frame-analyzer/internal/logger"
	"go-frame-analyzer/internal/service"
	"go-frame-analyzer/pkg/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler wires the HTTP routes over the frame analysis service.
func NewHandler(svc service.FrameAnalysisService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(requestSizeLimiter(cfg.MaxRequestBodySize))

	r.GET("/health", healthCheck(svc))
	r.POST("/analyze", analyzeFrame(svc, cfg))
	r.POST("/analyze_batch", analyzeBatch(svc, cfg))

	return r
}

func analyzeFrame(svc service.FrameAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.FrameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"frame_path":  req.FramePath,
			"frame_index": req.FrameIndex,
			"profile":     req.Profile,
			"ip":          c.ClientIP(),
		}).Info("Processing frame analysis request")

		result, err := svc.AnalyzeFrame(ctx, req)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "frame analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"frame_path":         req.FramePath,
			"quality_score":      result.QualityScore,
			"has_product":        result.HasProduct,
			"degraded":           result.Degraded,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Frame analysis completed")

		c.JSON(http.StatusOK, result)
	}
}

func analyzeBatch(svc service.FrameAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var reqs []models.FrameRequest
		if err := c.ShouldBindJSON(&reqs); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid batch request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		results, err := svc.AnalyzeBatch(ctx, reqs)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "batch analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"batch_size":         len(reqs),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Batch analysis completed")

		c.JSON(http.StatusOK, results)
	}
}

func healthCheck(svc service.FrameAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !svc.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":       "initializing",
				"model_loaded": false,
				"time":         time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":       "available",
			"model_loaded": true,
			"time":         time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
