package species

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rozennrd/dave-backend/internal/domain"
)

// Клиент справочника видов (Perenual API). Ответы кешируем в Redis на сутки —
// справочник меняется редко, а у API жёсткие квоты.

const DefaultBaseURL = "https://perenual.com/api/v2"

const cacheTTLSeconds = 24 * 60 * 60

type Ref struct {
	ID         int    `json:"id"`
	CommonName string `json:"common_name"`
}

type Details struct {
	ID                int      `json:"id"`
	CommonName        string   `json:"common_name"`
	ScientificName    []string `json:"scientific_name"`
	Family            string   `json:"family"`
	Type              string   `json:"type"`
	ImageURL          *string  `json:"image_url,omitempty"`
	CareLevel         string   `json:"care_level"`
	Sunlight          []string `json:"sunlight"`
	Watering          string   `json:"watering"`
	Indoor            bool     `json:"indoor"`
	PoisonousToHumans bool     `json:"poisonous_to_humans"`
	PoisonousToPets   bool     `json:"poisonous_to_pets"`
	DroughtTolerant   bool     `json:"drought_tolerant"`
	Soil              []string `json:"soil"`
}

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	cache   domain.Cache
	logger  *log.Logger
}

func New(baseURL, apiKey string, cache domain.Cache, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

// List возвращает страницу справочника: пары (id, common_name).
func (c *Client) List(ctx context.Context, page int) ([]Ref, error) {
	if page < 1 {
		page = 1
	}
	ckey := domain.CacheKeySpeciesList(page)
	if b, err := c.cache.Get(ctx, ckey); err == nil && b != nil {
		var cached []Ref
		if json.Unmarshal(b, &cached) == nil {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/species-list?key=%s&page=%d", c.baseURL, c.apiKey, page)
	var payload struct {
		Data []Ref `json:"data"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	refs := payload.Data
	if refs == nil {
		refs = []Ref{}
	}
	if b, err := json.Marshal(refs); err == nil {
		_ = c.cache.Set(ctx, ckey, b, cacheTTLSeconds)
	}
	return refs, nil
}

// Details возвращает карточку вида. Пустоты в ответе API подменяем
// дефолтами, как это делал мобильный клиент: без soil — "Not specified",
// без sunlight — "part shade", пустые строки — "Unknown".
func (c *Client) Details(ctx context.Context, id int) (Details, error) {
	ckey := domain.CacheKeySpeciesDetails(id)
	if b, err := c.cache.Get(ctx, ckey); err == nil && b != nil {
		var cached Details
		if json.Unmarshal(b, &cached) == nil {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/species/details/%d?key=%s", c.baseURL, id, c.apiKey)
	var payload struct {
		ID             int      `json:"id"`
		CommonName     string   `json:"common_name"`
		ScientificName []string `json:"scientific_name"`
		Family         string   `json:"family"`
		Type           string   `json:"type"`
		DefaultImage   *struct {
			OriginalURL string `json:"original_url"`
		} `json:"default_image"`
		CareLevel         string   `json:"care_level"`
		Sunlight          []string `json:"sunlight"`
		Watering          string   `json:"watering"`
		Indoor            bool     `json:"indoor"`
		PoisonousToHumans bool     `json:"poisonous_to_humans"`
		PoisonousToPets   bool     `json:"poisonous_to_pets"`
		DroughtTolerant   bool     `json:"drought_tolerant"`
		Soil              []string `json:"soil"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return Details{}, err
	}

	d := Details{
		ID:                payload.ID,
		CommonName:        orUnknown(payload.CommonName),
		ScientificName:    []string{"Unknown"},
		Family:            orUnknown(payload.Family),
		Type:              orUnknown(payload.Type),
		CareLevel:         orUnknown(payload.CareLevel),
		Sunlight:          payload.Sunlight,
		Watering:          orUnknown(payload.Watering),
		Indoor:            payload.Indoor,
		PoisonousToHumans: payload.PoisonousToHumans,
		PoisonousToPets:   payload.PoisonousToPets,
		DroughtTolerant:   payload.DroughtTolerant,
		Soil:              payload.Soil,
	}
	if len(payload.ScientificName) > 0 {
		d.ScientificName = []string{payload.ScientificName[0]}
	}
	if payload.DefaultImage != nil && payload.DefaultImage.OriginalURL != "" {
		u := payload.DefaultImage.OriginalURL
		d.ImageURL = &u
	}
	if len(d.Sunlight) == 0 {
		d.Sunlight = []string{"part shade"}
	}
	if len(d.Soil) == 0 {
		d.Soil = []string{"Not specified"}
	}

	if b, err := json.Marshal(d); err == nil {
		_ = c.cache.Set(ctx, ckey, b, cacheTTLSeconds)
	}
	return d, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Printf("GET failed after %s: %v", time.Since(start), err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("GET status=%d after %s", resp.StatusCode, time.Since(start))
		return fmt.Errorf("perenual: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Printf("decode failed: %v", err)
		return fmt.Errorf("perenual: decode: %w", err)
	}
	c.logger.Printf("GET ok in %s", time.Since(start))
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
