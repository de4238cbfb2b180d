package plant

import (
	"encoding/json"
	"net/http"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

// Поля растения без id/ownerId: id присваивает хранилище, владельца — гард.
type createRequest struct {
	CommonName        string   `json:"common_name"`
	ScientificName    []string `json:"scientific_name"`
	PlantName         *string  `json:"plant_name"`
	Family            *string  `json:"family"`
	Type              *string  `json:"type"`
	ImageURL          *string  `json:"image_url"`
	CareLevel         *string  `json:"care_level"`
	Watering          *string  `json:"watering"`
	Notes             *string  `json:"notes"`
	Sunlight          []string `json:"sunlight"`
	Soil              []string `json:"soil"`
	Indoor            *bool    `json:"indoor"`
	PoisonousToHumans *bool    `json:"poisonous_to_humans"`
	PoisonousToPets   *bool    `json:"poisonous_to_pets"`
	DroughtTolerant   *bool    `json:"drought_tolerant"`
}

type createResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Create godoc
// @Summary     Create plant
// @Description Создаёт запись о растении у текущего пользователя.
// @Tags        plants
// @Accept      json
// @Produce     json
// @Param       request body createRequest true "plant fields"
// @Success     200 {object} domain.APIEnvelope{response=createResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/plants [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "plant.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	p := domain.Plant{
		OwnerID:           me.ID, // только из гарда, никогда из запроса
		CommonName:        req.CommonName,
		ScientificName:    req.ScientificName,
		PlantName:         req.PlantName,
		Family:            req.Family,
		Type:              req.Type,
		ImageURL:          req.ImageURL,
		CareLevel:         req.CareLevel,
		Watering:          req.Watering,
		Notes:             req.Notes,
		Sunlight:          req.Sunlight,
		Soil:              req.Soil,
		Indoor:            req.Indoor,
		PoisonousToHumans: req.PoisonousToHumans,
		PoisonousToPets:   req.PoisonousToPets,
		DroughtTolerant:   req.DroughtTolerant,
	}
	if err := domain.ValidateNewPlant(p); err != nil {
		logx.Error(h.Log, reqID, op, "validation failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	out, err := h.Plants.CreatePlant(r.Context(), p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.invalidateList(r.Context(), me.ID)
	logx.Info(h.Log, reqID, op, "ok", "plant_id", out.ID, "owner", me.ID)
	v1.WriteOKResponse(w, r, createResponse{ID: out.ID.String(), Message: "Plant created successfully!"})
}
