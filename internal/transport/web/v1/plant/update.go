package plant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

type updateRequest struct {
	Updates domain.PlantPatch `json:"updates"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Update godoc
// @Summary     Update plant (merge)
// @Description Меняет только переданные поля. ownerId менять нельзя.
// @Tags        plants
// @Accept      json
// @Produce     json
// @Param       id path string true "plant id"
// @Param       request body updateRequest true "partial fields"
// @Success     200 {object} domain.APIEnvelope{response=messageResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/plants/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "plant.update"
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

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// валидация патча ДО чтения записи: пустой патч и попытка сменить
	// владельца отсекаются без обращения к хранилищу
	if err := domain.ValidatePatch(req.Updates); err != nil {
		logx.Error(h.Log, reqID, op, "bad patch", err, "plant_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// порядок зафиксирован: существование (404) раньше владения (403)
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

	if err := h.Plants.UpdatePlant(r.Context(), id, me.ID, req.Updates); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteDomainError(w, r, domain.ErrNotFound)
			return
		}
		logx.Error(h.Log, reqID, op, "update failed", err, "plant_id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.invalidateList(r.Context(), me.ID)
	logx.Info(h.Log, reqID, op, "ok", "plant_id", id, "fields", len(req.Updates))
	v1.WriteOKResponse(w, r, messageResponse{Message: "Plant updated successfully!"})
}
