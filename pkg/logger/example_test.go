package logger_test

import (
	"errors"

	"github.com/stockpulse/platform/pkg/logger"
)

// Example_basic demonstrates basic logger usage.
func Example_basic() {
	log := logger.New(logger.Options{
		Env:    "development",
		Level:  "info",
		Format: "console",
	})

	log.Debug("This won't appear (level is info)")
	log.Info("Pipeline started")
	log.Warn("Price history shorter than requested")
	log.Error("Extraction failed")

	log.Infof("Processed %d symbols", 50)
}

// Example_withFields demonstrates structured logging with fields.
func Example_withFields() {
	log := logger.New(logger.Options{
		Env:    "production",
		Level:  "info",
		Format: "json",
	})

	symbolLog := log.WithField("symbol", "RELIANCE")
	symbolLog.Info("Record persisted")

	runLog := log.WithFields(map[string]interface{}{
		"job_id":    "3f1c9a7e",
		"processed": 48,
		"failed":    2,
	})
	runLog.Info("Batch finished")
}

// Example_withError demonstrates error logging.
func Example_withError() {
	log := logger.New(logger.Options{
		Env:    "production",
		Level:  "error",
		Format: "json",
	})

	err := errors.New("HTTP 503 from upstream")
	log.WithError(err).Error("Failed to download bhavcopy")

	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"source":      "nse_bhavcopy",
		}).
		Error("Giving up after retries")
}
