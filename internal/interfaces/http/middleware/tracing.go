package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/logger"
)

// Tracing runs every request inside an otelgin server span. Pair it with
// TracingAttributes placed after it in the chain; the span is still
// recording there, so identity attributes resolved during the request can
// be attached before otelgin ends it.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// TracingAttributes enriches the active span after the handler chain has
// run with the request id, the authenticated company and user ids, the
// selected MC number and an error status for 4xx/5xx responses.
func TracingAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if id, exists := c.Get("request_id"); exists {
			if s, ok := id.(string); ok && s != "" {
				span.SetAttributes(attribute.String("request_id", s))
			}
		}
		ctx := c.Request.Context()
		if companyID := logger.GetCompanyID(ctx); companyID != "" {
			span.SetAttributes(attribute.String("company_id", companyID))
		}
		if userID := logger.GetUserID(ctx); userID != "" {
			span.SetAttributes(attribute.String("user_id", userID))
		}
		if mc := GetSelectedMc(c); mc != nil {
			span.SetAttributes(attribute.String("mc_number_id", mc.String()))
		}

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
			span.SetAttributes(attribute.Int("http.status_code", status))
		}
	}
}
