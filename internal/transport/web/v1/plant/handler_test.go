package plant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
)

// ---- фейки портов ----

type fakePlants struct {
	byID map[domain.PlantID]domain.Plant

	createErr error
	listErr   error
	updateErr error
}

func newFakePlants() *fakePlants {
	return &fakePlants{byID: make(map[domain.PlantID]domain.Plant)}
}

func (f *fakePlants) CreatePlant(_ context.Context, p domain.Plant) (domain.Plant, error) {
	if f.createErr != nil {
		return domain.Plant{}, f.createErr
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	p.Normalize()
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakePlants) PlantByID(_ context.Context, id domain.PlantID) (domain.Plant, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Plant{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePlants) PlantsByOwner(_ context.Context, owner domain.UserID) ([]domain.Plant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	res := make([]domain.Plant, 0)
	for _, p := range f.byID {
		if p.OwnerID == owner {
			res = append(res, p)
		}
	}
	return res, nil
}

func (f *fakePlants) UpdatePlant(_ context.Context, id domain.PlantID, owner domain.UserID, patch domain.PlantPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok || p.OwnerID != owner {
		return domain.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "common_name":
			p.CommonName, _ = v.(string)
		case "watering":
			s, _ := v.(string)
			p.Watering = &s
		case "notes":
			s, _ := v.(string)
			p.Notes = &s
		case "indoor":
			b, _ := v.(bool)
			p.Indoor = &b
		case "sunlight":
			p.Sunlight = toStrings(v)
		}
	}
	f.byID[id] = p
	return nil
}

func toStrings(v any) []string {
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, x := range raw {
		s, _ := x.(string)
		out = append(out, s)
	}
	return out
}

func (f *fakePlants) DeletePlant(_ context.Context, id domain.PlantID, owner domain.UserID) error {
	p, ok := f.byID[id]
	if !ok || p.OwnerID != owner {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePlants) SeedPlants(_ context.Context, owner domain.UserID, plants []domain.Plant) (int, error) {
	for _, p := range f.byID {
		if p.OwnerID == owner {
			return 0, nil
		}
	}
	for _, p := range plants {
		p.ID = uuid.New()
		p.OwnerID = owner
		f.byID[p.ID] = p
	}
	return len(plants), nil
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (c *fakeCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.data[key] = val
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close()                     {}

// ---- обвязка ----

func newTestHandler() (*Handler, *fakePlants, *fakeCache) {
	repo := newFakePlants()
	cache := newFakeCache()
	h := &Handler{
		Log:     log.New(io.Discard, "", 0),
		Plants:  repo,
		Cache:   cache,
		ListTTL: 60,
	}
	return h, repo, cache
}

func authedRequest(method, target string, body string, u domain.User) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, rd)
	return r.WithContext(mw.WithUser(r.Context(), u))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	env := decodeEnvelope(t, rec)
	var e struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env["error"], &e))
	return e.Code
}

var (
	alice = domain.User{ID: uuid.New(), Login: "alice@example.com"}
	bob   = domain.User{ID: uuid.New(), Login: "bob@example.com"}
)

// ---- create ----

func TestCreate_StampsOwnerFromContext(t *testing.T) {
	h, repo, _ := newTestHandler()

	// ownerId в теле игнорируется: владелец всегда из контекста
	body := fmt.Sprintf(`{"common_name":"Monstera","scientific_name":["Monstera deliciosa"],"ownerId":%q}`, bob.ID)
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/plants", body, alice))

	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env["response"], &resp))
	assert.Equal(t, "Plant created successfully!", resp.Message)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	stored, err := repo.PlantByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, stored.OwnerID)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"нет common_name", `{"scientific_name":["Monstera deliciosa"]}`},
		{"нет scientific_name", `{"common_name":"Monstera"}`},
		{"пустой scientific_name", `{"common_name":"Monstera","scientific_name":[]}`},
		{"битый json", `{"common_name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo, _ := newTestHandler()
			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest(http.MethodPost, "/api/plants", tt.body, alice))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, domain.ErrCodeBadParams, errCode(t, rec))
			assert.Empty(t, repo.byID, "ничего не должно сохраниться")
		})
	}
}

func TestCreate_InvalidatesListCache(t *testing.T) {
	h, _, cache := newTestHandler()
	ckey := domain.CacheKeyPlantList(alice.ID)
	cache.data[ckey] = []byte(`{"data":[]}`)

	body := `{"common_name":"Monstera","scientific_name":["Monstera deliciosa"]}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/plants", body, alice))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, cache.data, ckey)
}

// ---- list ----

func TestList_EmptyCollectionIsEmptyArray(t *testing.T) {
	h, _, _ := newTestHandler()
	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/plants", "", alice))

	require.Equal(t, http.StatusOK, rec.Code)
	// пустая коллекция сериализуется как [], не null
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestList_OnlyOwnPlants(t *testing.T) {
	h, repo, _ := newTestHandler()
	_, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: alice.ID, CommonName: "Monstera", ScientificName: []string{"Monstera deliciosa"},
	})
	require.NoError(t, err)
	_, err = repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: bob.ID, CommonName: "Pothos", ScientificName: []string{"Epipremnum aureum"},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/plants", "", alice))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var plants []domain.Plant
	require.NoError(t, json.Unmarshal(env["data"], &plants))
	require.Len(t, plants, 1)
	assert.Equal(t, "Monstera", plants[0].CommonName)
	assert.Equal(t, alice.ID, plants[0].OwnerID)
}

func TestList_ServesFromCache(t *testing.T) {
	h, repo, cache := newTestHandler()
	cached := `{"data":[{"common_name":"Cached"}]}`
	cache.data[domain.CacheKeyPlantList(alice.ID)] = []byte(cached)
	repo.listErr = fmt.Errorf("db down") // до БД дойти не должны

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/plants", "", alice))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, cached, rec.Body.String())
}

func TestList_PopulatesCache(t *testing.T) {
	h, _, cache := newTestHandler()
	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/plants", "", alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, cache.data, domain.CacheKeyPlantList(alice.ID))
}

// ---- get one ----

func TestGetOne(t *testing.T) {
	h, repo, _ := newTestHandler()
	mine, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: alice.ID, CommonName: "Monstera", ScientificName: []string{"Monstera deliciosa"},
	})
	require.NoError(t, err)
	foreign, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: bob.ID, CommonName: "Pothos", ScientificName: []string{"Epipremnum aureum"},
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantCode   int
	}{
		{"своя запись", mine.ID.String(), http.StatusOK, 0},
		{"кривой id", "not-a-uuid", http.StatusBadRequest, domain.ErrCodeBadParams},
		{"несуществующая — 404, не 403", uuid.NewString(), http.StatusNotFound, domain.ErrCodeNotFound},
		{"чужая — 403", foreign.ID.String(), http.StatusForbidden, domain.ErrCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authedRequest(http.MethodGet, "/api/plants/"+tt.id, "", alice)
			r.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()
			h.GetOne(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, errCode(t, rec))
			}
		})
	}
}

// ---- update ----

func TestUpdate_MergeSemantics(t *testing.T) {
	h, repo, _ := newTestHandler()
	p, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID:        alice.ID,
		CommonName:     "Monstera",
		ScientificName: []string{"Monstera deliciosa"},
		Notes:          domain.Str("by the window"),
	})
	require.NoError(t, err)

	body := `{"updates":{"watering":"weekly","indoor":true}}`
	r := authedRequest(http.MethodPatch, "/api/plants/"+p.ID.String(), body, alice)
	r.SetPathValue("id", p.ID.String())
	rec := httptest.NewRecorder()
	h.Update(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plant updated successfully!")

	got, err := repo.PlantByID(context.Background(), p.ID)
	require.NoError(t, err)
	// переданные поля обновились
	require.NotNil(t, got.Watering)
	assert.Equal(t, "weekly", *got.Watering)
	require.NotNil(t, got.Indoor)
	assert.True(t, *got.Indoor)
	// непереданные — нетронуты
	assert.Equal(t, "Monstera", got.CommonName)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "by the window", *got.Notes)
}

func TestUpdate_Failures(t *testing.T) {
	h, repo, _ := newTestHandler()
	mine, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: alice.ID, CommonName: "Monstera", ScientificName: []string{"Monstera deliciosa"},
	})
	require.NoError(t, err)
	foreign, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: bob.ID, CommonName: "Pothos", ScientificName: []string{"Epipremnum aureum"},
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
		wantCode   int
	}{
		{"пустой патч", mine.ID.String(), `{"updates":{}}`, http.StatusBadRequest, domain.ErrCodeBadParams},
		{"без поля updates", mine.ID.String(), `{}`, http.StatusBadRequest, domain.ErrCodeBadParams},
		{"смена владельца", mine.ID.String(), `{"updates":{"ownerId":"x"}}`, http.StatusForbidden, domain.ErrCodeForbidden},
		{"неизвестное поле", mine.ID.String(), `{"updates":{"color":"green"}}`, http.StatusBadRequest, domain.ErrCodeBadParams},
		{"несуществующая — 404 раньше 403", uuid.NewString(), `{"updates":{"notes":"x"}}`, http.StatusNotFound, domain.ErrCodeNotFound},
		{"чужая — 403", foreign.ID.String(), `{"updates":{"notes":"x"}}`, http.StatusForbidden, domain.ErrCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authedRequest(http.MethodPatch, "/api/plants/"+tt.id, tt.body, alice)
			r.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()
			h.Update(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errCode(t, rec))
		})
	}

	// чужая запись не изменилась
	got, err := repo.PlantByID(context.Background(), foreign.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Notes)
}

func TestUpdate_SunlightOrderPreserved(t *testing.T) {
	h, repo, _ := newTestHandler()
	p, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: alice.ID, CommonName: "Monstera", ScientificName: []string{"Monstera deliciosa"},
	})
	require.NoError(t, err)

	body := `{"updates":{"sunlight":["full sun","part shade","full shade"]}}`
	r := authedRequest(http.MethodPatch, "/api/plants/"+p.ID.String(), body, alice)
	r.SetPathValue("id", p.ID.String())
	rec := httptest.NewRecorder()
	h.Update(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := repo.PlantByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"full sun", "part shade", "full shade"}, got.Sunlight)
}

// ---- delete ----

func TestDelete(t *testing.T) {
	h, repo, cache := newTestHandler()
	mine, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: alice.ID, CommonName: "Monstera", ScientificName: []string{"Monstera deliciosa"},
	})
	require.NoError(t, err)
	foreign, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: bob.ID, CommonName: "Pothos", ScientificName: []string{"Epipremnum aureum"},
	})
	require.NoError(t, err)

	cache.data[domain.CacheKeyPlantList(alice.ID)] = []byte(`{}`)

	// чужую удалить нельзя
	r := authedRequest(http.MethodDelete, "/api/plants/"+foreign.ID.String(), "", alice)
	r.SetPathValue("id", foreign.ID.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	_, err = repo.PlantByID(context.Background(), foreign.ID)
	assert.NoError(t, err, "чужая запись должна остаться")

	// несуществующую — 404
	missing := uuid.NewString()
	r = authedRequest(http.MethodDelete, "/api/plants/"+missing, "", alice)
	r.SetPathValue("id", missing)
	rec = httptest.NewRecorder()
	h.Delete(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// свою — ок, кеш сброшен
	r = authedRequest(http.MethodDelete, "/api/plants/"+mine.ID.String(), "", alice)
	r.SetPathValue("id", mine.ID.String())
	rec = httptest.NewRecorder()
	h.Delete(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plant deleted successfully!")
	_, err = repo.PlantByID(context.Background(), mine.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, cache.data, domain.CacheKeyPlantList(alice.ID))
}

// ---- seed ----

func TestSeed_FiveThenZero(t *testing.T) {
	h, repo, _ := newTestHandler()

	rec := httptest.NewRecorder()
	h.Seed(rec, authedRequest(http.MethodPost, "/api/plants/seed", "", alice))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp struct {
		Message     string `json:"message"`
		PlantsAdded int    `json:"plantsAdded"`
	}
	require.NoError(t, json.Unmarshal(env["response"], &resp))
	assert.Equal(t, 5, resp.PlantsAdded)
	assert.Equal(t, "Sample plants created successfully!", resp.Message)

	// повторный вызов идемпотентен
	rec = httptest.NewRecorder()
	h.Seed(rec, authedRequest(http.MethodPost, "/api/plants/seed", "", alice))
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env["response"], &resp))
	assert.Equal(t, 0, resp.PlantsAdded)
	assert.Equal(t, "Plants already exist, skipping initialization.", resp.Message)

	plants, err := repo.PlantsByOwner(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, plants, 5)
}

func TestSeed_SkipsWhenAnyRecordExists(t *testing.T) {
	h, repo, _ := newTestHandler()
	_, err := repo.CreatePlant(context.Background(), domain.Plant{
		OwnerID: alice.ID, CommonName: "Monstera", ScientificName: []string{"Monstera deliciosa"},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Seed(rec, authedRequest(http.MethodPost, "/api/plants/seed", "", alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"plantsAdded":0`)

	plants, err := repo.PlantsByOwner(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, plants, 1)
}

// ---- без identity в контексте ----

func TestHandlers_Unauthenticated(t *testing.T) {
	h, _, _ := newTestHandler()
	calls := map[string]func(http.ResponseWriter, *http.Request){
		"create": h.Create, "list": h.List, "getone": h.GetOne,
		"update": h.Update, "delete": h.Delete, "seed": h.Seed,
	}
	for name, fn := range calls {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/plants", nil)
			rec := httptest.NewRecorder()
			fn(rec, r)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, domain.ErrCodeUnauth, errCode(t, rec))
		})
	}
}
