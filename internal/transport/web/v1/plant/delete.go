package plant

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete plant (owner only)
// @Description Удаляет запись навсегда, восстановления нет.
// @Tags        plants
// @Produce     json
// @Param       id path string true "plant id"
// @Success     200 {object} domain.APIEnvelope{response=messageResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/plants/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "plant.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// тот же порядок, что и в Update: 404 раньше 403
	p, err := h.Plants.PlantByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "fetch failed", err, "plant_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if p.OwnerID != me.ID {
		logx.Error(h.Log, reqID, op, "not owner", domain.ErrForbidden, "plant_id", id)
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Plants.DeletePlant(r.Context(), id, me.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteDomainError(w, r, domain.ErrNotFound)
			return
		}
		logx.Error(h.Log, reqID, op, "delete failed", err, "plant_id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.invalidateList(r.Context(), me.ID)
	logx.Info(h.Log, reqID, op, "ok", "plant_id", id)
	v1.WriteOKResponse(w, r, messageResponse{Message: "Plant deleted successfully!"})
}
