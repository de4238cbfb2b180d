package plant

import (
	"net/http"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

type seedResponse struct {
	Message     string `json:"message"`
	PlantsAdded int    `json:"plantsAdded"`
}

// Seed godoc
// @Summary     Initialize sample plants
// @Description Идемпотентный посев стартового набора: пять растений для
// @Description пустой коллекции, ноль — если записи уже есть. Безопасно
// @Description звать при каждом старте клиента.
// @Tags        plants
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{response=seedResponse}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/plants/seed [post]
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	const op = "plant.seed"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	added, err := h.Plants.SeedPlants(r.Context(), me.ID, domain.SamplePlants())
	if err != nil {
		logx.Error(h.Log, reqID, op, "seed failed", err, "owner", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	resp := seedResponse{PlantsAdded: added}
	if added > 0 {
		resp.Message = "Sample plants created successfully!"
		h.invalidateList(r.Context(), me.ID)
	} else {
		resp.Message = "Plants already exist, skipping initialization."
	}

	logx.Info(h.Log, reqID, op, "ok", "owner", me.ID, "added", added)
	v1.WriteOKResponse(w, r, resp)
}
