package domain

import (
	"context"
	"strconv"
)

// Ключи кеша — единое место, чтобы не расползались по коду.
func CacheKeyPlantList(owner UserID) string { return "plants:" + owner.String() }
func CacheKeyTokenJTI(jti string) string { return "jti:" + jti }
func CacheKeySpeciesList(page int) string { return "species:list:" + strconv.Itoa(page) }
func CacheKeySpeciesDetails(id int) string { return "species:details:" + strconv.Itoa(id) }

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}
