package utils

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GenerateTraceId returns a fresh trace id for an inbound request.
func GenerateTraceId() string {
	return uuid.New().String()
}

// ExtractServiceName returns the service name used in log fields.
func ExtractServiceName() string {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "commerce-core"
	}
	return service
}

// LogEntry dispatches a message to the entry at the given level.
func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	default:
		entry.Info(message)
	}
}

// LogMessageWithFields logs a message enriched with the request's trace id
// and the service name.
func LogMessageWithFields(c *gin.Context, level, message string) {
	traceId, _ := c.Value(TraceIdKey.String()).(string)

	entry := log.WithFields(log.Fields{
		"traceId": traceId,
		"service": ExtractServiceName(),
	})

	LogEntry(entry, level, message)
}
