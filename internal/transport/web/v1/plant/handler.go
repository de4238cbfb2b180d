package plant

import (
	"context"
	"log"

	"github.com/rozennrd/dave-backend/internal/domain"
)

type Handler struct {
	Log    *log.Logger
	Plants domain.PlantsRepo
	Cache  domain.Cache

	ListTTL int // секунд
}

// Любая мутация сбрасывает кеш списка владельца — следующий fetch идёт в БД.
func (h *Handler) invalidateList(ctx context.Context, owner domain.UserID) {
	if err := h.Cache.Del(ctx, domain.CacheKeyPlantList(owner)); err != nil {
		h.Log.Printf("cache invalidate failed owner=%s: %v", owner, err)
	}
}
