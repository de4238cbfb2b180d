package plant

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Get one plant
// @Description Одна запись по id. Сначала существование (404), потом владение (403).
// @Tags        plants
// @Produce     json
// @Param       id path string true "plant id"
// @Success     200 {object} domain.APIEnvelope{data=domain.Plant}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/plants/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "plant.getone"
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

	p, err := h.Plants.PlantByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "fetch failed", err, "plant_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if p.OwnerID != me.ID {
		logx.Error(h.Log, reqID, op, "not owner", domain.ErrForbidden, "plant_id", id, "owner", p.OwnerID)
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "plant_id", id)
	v1.WriteOKData(w, r, p)
}
