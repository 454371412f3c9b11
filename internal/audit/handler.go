package audit

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/gym-management/internal/transport"
	"github.com/frahmantamala/gym-management/pkg/logger"
)

type RepositoryAPI interface {
	List(userID, action string, limit int) ([]*ActivityLog, error)
}

type Handler struct {
	*transport.BaseHandler
	Repo RepositoryAPI
}

func NewHandler(repo RepositoryAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Repo:        repo,
	}
}

// ListActivityLogs serves the staff-logs screen. Route is gated on
// activity_logs:read, so only OWNER ever reaches this.
func (h *Handler) ListActivityLogs(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	action := r.URL.Query().Get("action")

	logs, err := h.Repo.List(userID, action, 500)
	if err != nil {
		h.Logger.Error("ListActivityLogs: repository error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to fetch activity logs")
		return
	}

	h.WriteJSON(w, http.StatusOK, logs)
}
