package api

import (
	"net/http"

	serr "github.com/IvanChernomyrdin/credkeeper/internal/shared/errors"
	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// Health проверяет доступность хранилища.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.StatusResponse
// @Failure      503 {object} models.ErrorResponse "Store unavailable"
// @Router       /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Ping(r.Context()); err != nil {
		h.Log.Logger.Sugar().Warnw("health check failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, serr.ErrUnavailable)
		return
	}
	WriteJSON(w, http.StatusOK, smodels.StatusResponse{Status: smodels.StatusOK})
}
