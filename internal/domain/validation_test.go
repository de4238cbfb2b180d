package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewPlant(t *testing.T) {
	tests := []struct {
		name    string
		plant   Plant
		wantErr error
	}{
		{
			name:  "минимально валидное",
			plant: Plant{CommonName: "Monstera", ScientificName: []string{"Monstera deliciosa"}},
		},
		{
			name:    "нет common_name",
			plant:   Plant{ScientificName: []string{"Monstera deliciosa"}},
			wantErr: ErrBadParams,
		},
		{
			name:    "нет scientific_name",
			plant:   Plant{CommonName: "Monstera"},
			wantErr: ErrBadParams,
		},
		{
			name:    "пустой scientific_name",
			plant:   Plant{CommonName: "Monstera", ScientificName: []string{}},
			wantErr: ErrBadParams,
		},
		{
			name:    "совсем пусто",
			plant:   Plant{},
			wantErr: ErrBadParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewPlant(tt.plant)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePatch(t *testing.T) {
	tests := []struct {
		name    string
		patch   PlantPatch
		wantErr error
	}{
		{
			name:  "одно поле",
			patch: PlantPatch{"watering": "weekly"},
		},
		{
			name:  "несколько полей",
			patch: PlantPatch{"notes": "repotted", "indoor": true, "sunlight": []any{"full sun"}},
		},
		{
			name:    "пустой патч",
			patch:   PlantPatch{},
			wantErr: ErrBadParams,
		},
		{
			name:    "nil патч",
			patch:   nil,
			wantErr: ErrBadParams,
		},
		{
			name:    "смена владельца",
			patch:   PlantPatch{"ownerId": "deadbeef"},
			wantErr: ErrForbidden,
		},
		{
			name:    "смена владельца snake_case",
			patch:   PlantPatch{"owner_id": "deadbeef"},
			wantErr: ErrForbidden,
		},
		{
			name:    "неизвестное поле",
			patch:   PlantPatch{"color": "green"},
			wantErr: ErrBadParams,
		},
		{
			name:    "id менять нельзя",
			patch:   PlantPatch{"id": "123"},
			wantErr: ErrBadParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(tt.patch)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("dave@example.com"))
	assert.True(t, ValidEmail("a.b+c@sub.domain.org"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("123456"))
	assert.True(t, ValidPassword("correct horse"))
	assert.False(t, ValidPassword("12345"))
	assert.False(t, ValidPassword(""))
}

func TestPlantNormalize(t *testing.T) {
	p := Plant{CommonName: "Pothos"}
	p.Normalize()
	require.NotNil(t, p.ScientificName)
	require.NotNil(t, p.Sunlight)
	require.NotNil(t, p.Soil)
	assert.Empty(t, p.ScientificName)

	// заполненные слайсы не трогаем, порядок сохраняется
	q := Plant{
		ScientificName: []string{"Epipremnum aureum"},
		Sunlight:       []string{"part shade", "full sun"},
		Soil:           []string{"loam"},
	}
	q.Normalize()
	assert.Equal(t, []string{"part shade", "full sun"}, q.Sunlight)
}

func TestSamplePlants(t *testing.T) {
	plants := SamplePlants()
	require.Len(t, plants, 5)

	names := make([]string, 0, len(plants))
	for _, p := range plants {
		names = append(names, p.CommonName)
		assert.NoError(t, ValidateNewPlant(p), "sample %q must pass creation validation", p.CommonName)
		assert.NotEmpty(t, p.Sunlight, "sample %q must carry sunlight tags", p.CommonName)
	}
	assert.Equal(t, []string{"Snake Plant", "Golden Pothos", "Monstera", "Spider Plant", "Peace Lily"}, names)
}
