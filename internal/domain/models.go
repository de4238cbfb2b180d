package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type PlantID = uuid.UUID

// Пользователь
type User struct {
	ID        UserID    `json:"id"`
	Login     string    `json:"login"` // email
	PassHash  []byte    `json:"-"`     // никогда не отдаём наружу
	CreatedAt time.Time `json:"created_at"`
}

// Запись о растении: один документ на растение, привязан к владельцу.
// Опциональные поля — указатели: отсутствие значения и false/"" — разные вещи
// (клиент показывает "Unknown", а не "No").
type Plant struct {
	ID      PlantID `json:"id"`
	OwnerID UserID  `json:"ownerId"` // неизменяем после создания

	CommonName     string   `json:"common_name"`     // обязательное
	ScientificName []string `json:"scientific_name"` // обязательное, хотя бы основное имя

	PlantName *string `json:"plant_name,omitempty"` // пользовательское прозвище
	Family    *string `json:"family,omitempty"`
	Type      *string `json:"type,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	CareLevel *string `json:"care_level,omitempty"`
	Watering  *string `json:"watering,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	// Теги; порядок сохраняем как прислал клиент
	Sunlight []string `json:"sunlight"`
	Soil     []string `json:"soil"`

	Indoor            *bool `json:"indoor,omitempty"`
	PoisonousToHumans *bool `json:"poisonous_to_humans,omitempty"`
	PoisonousToPets   *bool `json:"poisonous_to_pets,omitempty"`
	DroughtTolerant   *bool `json:"drought_tolerant,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize приводит nil-слайсы к пустым: наружу всегда уходит [], а не null.
func (p *Plant) Normalize() {
	if p.ScientificName == nil {
		p.ScientificName = []string{}
	}
	if p.Sunlight == nil {
		p.Sunlight = []string{}
	}
	if p.Soil == nil {
		p.Soil = []string{}
	}
}

// Частичное обновление: поле -> новое значение. Меняются только переданные
// поля (merge, не replace).
type PlantPatch map[string]any

// Хелперы для литералов опциональных полей
func Str(s string) *string { return &s }
func Bool(b bool) *bool    { return &b }
