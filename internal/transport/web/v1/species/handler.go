package species

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/rozennrd/dave-backend/internal/domain"
	speciesapi "github.com/rozennrd/dave-backend/internal/species"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

// Lookup — то, что нам нужно от клиента справочника видов.
type Lookup interface {
	List(ctx context.Context, page int) ([]speciesapi.Ref, error)
	Details(ctx context.Context, id int) (speciesapi.Details, error)
}

type Handler struct {
	Log     *log.Logger
	Species Lookup
}

// List godoc
// @Summary     Species reference list
// @Description Страница справочника видов: пары (id, common_name).
// @Tags        species
// @Produce     json
// @Param       page query int false "page (default 1)"
// @Success     200 {object} domain.APIEnvelope{data=[]speciesapi.Ref}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/species [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "species.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			page = n
		}
	}

	refs, err := h.Species.List(r.Context(), page)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "page", page)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "page", page, "count", len(refs))
	v1.WriteOKData(w, r, refs)
}

// Details godoc
// @Summary     Species details
// @Tags        species
// @Produce     json
// @Param       id path int true "species id"
// @Success     200 {object} domain.APIEnvelope{data=speciesapi.Details}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/species/{id} [get]
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	const op = "species.details"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	d, err := h.Species.Details(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "species_id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "species_id", id)
	v1.WriteOKData(w, r, d)
}
