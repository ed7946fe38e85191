package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/student-approval/internal/events"
)

// Emitter ships a diagnostic event to the log sink, best-effort.
type Emitter interface {
	Emit(level, message string, data any)
}

// TelemetryService forwards submission lifecycle events to the log sink.
// Delivery is fire-and-forget; the emitter swallows its own failures.
type TelemetryService struct {
	dispatcher events.Dispatcher
	emitter    Emitter
	logger     *zap.Logger
}

// NewTelemetryService creates the service.
func NewTelemetryService(dispatcher events.Dispatcher, emitter Emitter, logger *zap.Logger) *TelemetryService {
	return &TelemetryService{dispatcher: dispatcher, emitter: emitter, logger: logger}
}

// RegisterHandlers subscribes to lifecycle events.
func (t *TelemetryService) RegisterHandlers() {
	if t.dispatcher == nil {
		return
	}
	t.dispatcher.Subscribe(events.EventSubmissionCreated, t.handle("submission created"))
	t.dispatcher.Subscribe(events.EventSubmissionApproved, t.handle("submission approved"))
	t.dispatcher.Subscribe(events.EventSubmissionRejected, t.handle("submission rejected"))
}

func (t *TelemetryService) handle(message string) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		t.logger.Info(message,
			zap.String("submission_id", event.SubmissionID),
			zap.String("actor", event.Actor.Email),
		)
		if t.emitter != nil {
			t.emitter.Emit("info", message, map[string]any{
				"submission_id": event.SubmissionID,
				"actor":         event.Actor.Email,
				"payload":       event.Payload,
			})
		}
		return nil
	}
}
