package domain

// Стартовый набор из пяти растений для нового пользователя. Все поля
// заполнены — на этих записях клиент показывает полноценные карточки.
// OwnerID проставляет хранилище при посеве.
func SamplePlants() []Plant {
	return []Plant{
		{
			CommonName:        "Snake Plant",
			ScientificName:    []string{"Sansevieria trifasciata", "Dracaena trifasciata"},
			PlantName:         Str("Mother-in-law's Tongue"),
			Family:            Str("Asparagaceae"),
			Type:              Str("succulent"),
			ImageURL:          Str("https://example.com/snake-plant.jpg"),
			CareLevel:         Str("Very Easy"),
			Watering:          Str("Low"),
			Sunlight:          []string{"low light", "bright indirect"},
			Soil:              []string{"Sandy", "Cactus mix"},
			Indoor:            Bool(true),
			PoisonousToHumans: Bool(false),
			PoisonousToPets:   Bool(true),
			DroughtTolerant:   Bool(true),
			Notes:             Str("Nearly indestructible, great for beginners"),
		},
		{
			CommonName:        "Golden Pothos",
			ScientificName:    []string{"Epipremnum aureum"},
			PlantName:         Str("Devil's Ivy"),
			Family:            Str("Araceae"),
			Type:              Str("vine"),
			ImageURL:          Str("https://example.com/pothos.jpg"),
			CareLevel:         Str("Easy"),
			Watering:          Str("Medium"),
			Sunlight:          []string{"low light", "indirect light"},
			Soil:              []string{"General potting mix"},
			Indoor:            Bool(true),
			PoisonousToHumans: Bool(true),
			PoisonousToPets:   Bool(true),
			DroughtTolerant:   Bool(true),
			Notes:             Str("Fast-growing trailing plant"),
		},
		{
			CommonName:        "Monstera",
			ScientificName:    []string{"Monstera deliciosa"},
			PlantName:         Str("Swiss Cheese Plant"),
			Family:            Str("Araceae"),
			Type:              Str("foliage"),
			ImageURL:          Str("https://example.com/monstera.jpg"),
			CareLevel:         Str("Easy"),
			Watering:          Str("Medium"),
			Sunlight:          []string{"bright indirect"},
			Soil:              []string{"Well-draining", "Peat-based"},
			Indoor:            Bool(true),
			PoisonousToHumans: Bool(true),
			PoisonousToPets:   Bool(true),
			DroughtTolerant:   Bool(false),
			Notes:             Str("Iconic split leaves, climbs with support"),
		},
		{
			CommonName:        "Spider Plant",
			ScientificName:    []string{"Chlorophytum comosum"},
			PlantName:         Str("Ribbon Plant"),
			Family:            Str("Asparagaceae"),
			Type:              Str("foliage"),
			ImageURL:          Str("https://example.com/spider-plant.jpg"),
			CareLevel:         Str("Very Easy"),
			Watering:          Str("Medium"),
			Sunlight:          []string{"indirect light", "part shade"},
			Soil:              []string{"General potting mix", "Well-draining"},
			Indoor:            Bool(true),
			PoisonousToHumans: Bool(false),
			PoisonousToPets:   Bool(false),
			DroughtTolerant:   Bool(true),
			Notes:             Str("Produces plantlets, safe for pets"),
		},
		{
			CommonName:        "Peace Lily",
			ScientificName:    []string{"Spathiphyllum wallisii"},
			PlantName:         Str("Peace Lily"),
			Family:            Str("Araceae"),
			Type:              Str("flowering"),
			ImageURL:          Str("https://example.com/peace-lily.jpg"),
			CareLevel:         Str("Easy"),
			Watering:          Str("Frequent"),
			Sunlight:          []string{"low light", "indirect light"},
			Soil:              []string{"Peat-based", "Well-draining"},
			Indoor:            Bool(true),
			PoisonousToHumans: Bool(true),
			PoisonousToPets:   Bool(true),
			DroughtTolerant:   Bool(false),
			Notes:             Str("Great for purifying indoor air"),
		},
	}
}
