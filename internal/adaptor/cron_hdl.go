package adaptor

import (
	"net/http"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/usecase"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"go.uber.org/zap"
)

// CronHandler exposes the reminder sweep to an external scheduler. The
// in-process hourly ticker calls the same service, so an external cron is
// optional redundancy.
type CronHandler struct {
	service usecase.ReminderService
	log     *zap.Logger
}

func NewCronHandler(service usecase.ReminderService, log *zap.Logger) *CronHandler {
	return &CronHandler{
		service: service,
		log:     log.With(zap.String("handler", "cron")),
	}
}

// RunReminders handles POST /api/cron/reminders (X-Cron-Key protected)
func (h *CronHandler) RunReminders(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RunSweeps(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "run reminder sweeps")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
