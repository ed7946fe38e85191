package worker

import (
	"github.com/spec-kit/student-approval/internal/service"
)

// StartTelemetryWorker registers telemetry event handlers.
func StartTelemetryWorker(telemetryService *service.TelemetryService) {
	if telemetryService == nil {
		return
	}
	telemetryService.RegisterHandlers()
}
