package plant

import (
	"encoding/json"
	"net/http"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

// List godoc
// @Summary     List own plants
// @Description Все растения текущего пользователя. Пустая коллекция — пустой массив.
// @Tags        plants
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Plant}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/plants [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "plant.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	// кэш
	ckey := domain.CacheKeyPlantList(me.ID)
	if b, err := h.Cache.Get(r.Context(), ckey); err != nil {
		h.Log.Printf("cache get list: %v", err)
	} else if b != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-ID", reqID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
		return
	}

	plants, err := h.Plants.PlantsByOwner(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "owner", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	env := domain.OkData(plants)
	if buf, err := json.Marshal(env); err == nil {
		_ = h.Cache.Set(r.Context(), ckey, buf, h.ListTTL)
	}

	logx.Info(h.Log, reqID, op, "ok", "owner", me.ID, "count", len(plants))
	v1.WriteEnvelope(w, r, http.StatusOK, env)
}
