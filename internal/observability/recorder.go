package observability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Severity classifies recorded events.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Recorder is the sink workflows report to: every failure and notable
// success path lands here with an event name, category, structured context
// and severity. Recording never fails the calling operation.
//
// Events are logged through zap and, when a Redis client is configured,
// mirrored onto a capped stream for out-of-process inspection.
type Recorder struct {
	logger    *zap.Logger
	client    *redis.Client
	stream    string
	streamMax int64
}

// NewRecorder builds a recorder. client may be nil, in which case events
// are only logged.
func NewRecorder(logger *zap.Logger, client *redis.Client, stream string, streamMax int64) *Recorder {
	return &Recorder{logger: logger, client: client, stream: stream, streamMax: streamMax}
}

// Event records a single workflow event. cause is the underlying error for
// error-severity events and may be nil.
func (r *Recorder) Event(ctx context.Context, name, category string, fields map[string]any, severity Severity, cause error) {
	if r == nil || r.logger == nil {
		return
	}

	zapFields := make([]zap.Field, 0, len(fields)+3)
	zapFields = append(zapFields, zap.String("event", name), zap.String("category", category))
	for key, val := range fields {
		zapFields = append(zapFields, zap.Any(key, val))
	}
	if cause != nil {
		zapFields = append(zapFields, zap.Error(cause))
	}

	switch severity {
	case SeverityError:
		r.logger.Error(name, zapFields...)
	case SeverityWarning:
		r.logger.Warn(name, zapFields...)
	default:
		r.logger.Info(name, zapFields...)
	}

	r.mirror(ctx, name, category, fields, severity, cause)
}

func (r *Recorder) mirror(ctx context.Context, name, category string, fields map[string]any, severity Severity, cause error) {
	if r.client == nil || r.stream == "" {
		return
	}

	values := map[string]interface{}{
		"event":    name,
		"category": category,
		"severity": string(severity),
		"ts":       time.Now().UTC().Format(time.RFC3339),
	}
	if len(fields) > 0 {
		if encoded, err := json.Marshal(fields); err == nil {
			values["context"] = string(encoded)
		}
	}
	if cause != nil {
		values["error"] = cause.Error()
	}

	if err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.streamMax,
		Approx: true,
		Values: values,
	}).Err(); err != nil {
		r.logger.Debug("event stream append failed", zap.Error(err))
	}
}
