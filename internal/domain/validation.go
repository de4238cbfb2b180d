package domain

import (
	"fmt"
	"regexp"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Минимум 6 символов (как у исходного identity-провайдера)
func ValidPassword(s string) bool {
	return len(s) >= 6
}

// ValidateNewPlant проверяет обязательные поля при создании: common_name и
// хотя бы одно научное имя. Остальное опционально и добирается patch'ами.
func ValidateNewPlant(p Plant) error {
	if p.CommonName == "" || len(p.ScientificName) == 0 {
		return fmt.Errorf("%w: common_name and scientific_name are required", ErrBadParams)
	}
	return nil
}

// Поля, которые разрешено менять через updatePlant.
var patchableFields = map[string]struct{}{
	"common_name":         {},
	"scientific_name":     {},
	"plant_name":          {},
	"family":              {},
	"type":                {},
	"image_url":           {},
	"care_level":          {},
	"watering":            {},
	"notes":               {},
	"sunlight":            {},
	"soil":                {},
	"indoor":              {},
	"poisonous_to_humans": {},
	"poisonous_to_pets":   {},
	"drought_tolerant":    {},
}

// ValidatePatch: пустой patch — bad params; попытка сменить владельца —
// forbidden; прочие неизвестные ключи — bad params (схема у нас жёсткая).
func ValidatePatch(patch PlantPatch) error {
	if len(patch) == 0 {
		return fmt.Errorf("%w: no update data provided", ErrBadParams)
	}
	for k := range patch {
		if k == "ownerId" || k == "owner_id" {
			return fmt.Errorf("%w: cannot change plant owner", ErrForbidden)
		}
		if _, ok := patchableFields[k]; !ok {
			return fmt.Errorf("%w: unknown field %q", ErrBadParams, k)
		}
	}
	return nil
}
