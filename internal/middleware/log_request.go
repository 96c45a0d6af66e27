package middleware

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/utils"
)

// LogRequest logs every inbound request with its trace id.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId, _ := c.Value(utils.TraceIdKey.String()).(string)
		entry := log.WithFields(log.Fields{
			"traceId": traceId,
			"service": utils.ExtractServiceName(),
		})
		utils.LogEntry(entry, "info", "Request received: "+c.Request.Method+" "+c.Request.URL.Path)
		c.Next()
	}
}
