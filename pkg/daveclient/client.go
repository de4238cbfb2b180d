// Package daveclient — Go-клиент API и проекция состояния коллекции
// растений для мобильного приложения.
package daveclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rozennrd/dave-backend/internal/domain"
)

// APIError — ошибка, возвращённая сервером внутри конверта.
type APIError struct {
	Code int    `json:"code"`
	Text string `json:"text"`
	HTTP int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Text)
}

// SeedResult — итог посева примеров.
type SeedResult struct {
	Message     string `json:"message"`
	PlantsAdded int    `json:"plantsAdded"`
}

// Client — тонкий HTTP-клиент бэкенда. Токен выставляется после Login.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken задаёт bearer-токен вручную (например, восстановленный из хранилища).
func (c *Client) SetToken(t string) { c.token = t }

func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "pswd": password}
	return c.do(ctx, http.MethodPost, "/api/register", body, nil)
}

// Login аутентифицирует пользователя и запоминает выданный токен.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "pswd": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Logout отзывает текущий токен и забывает его.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	err := c.do(ctx, http.MethodDelete, "/api/auth/"+url.PathEscape(c.token), nil, nil)
	c.token = ""
	return err
}

// Plants возвращает коллекцию текущего пользователя.
func (c *Client) Plants(ctx context.Context) ([]domain.Plant, error) {
	var plants []domain.Plant
	if err := c.doData(ctx, http.MethodGet, "/api/plants", &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// Plant возвращает одну запись по идентификатору.
func (c *Client) Plant(ctx context.Context, id string) (domain.Plant, error) {
	var p domain.Plant
	if err := c.doData(ctx, http.MethodGet, "/api/plants/"+url.PathEscape(id), &p); err != nil {
		return domain.Plant{}, err
	}
	return p, nil
}

// CreatePlant добавляет растение и возвращает присвоенный id.
func (c *Client) CreatePlant(ctx context.Context, p domain.Plant) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/plants", p, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdatePlant применяет частичное обновление к записи.
func (c *Client) UpdatePlant(ctx context.Context, id string, updates map[string]any) error {
	body := map[string]any{"updates": updates}
	return c.do(ctx, http.MethodPatch, "/api/plants/"+url.PathEscape(id), body, nil)
}

func (c *Client) DeletePlant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/plants/"+url.PathEscape(id), nil, nil)
}

// SeedPlants заполняет пустую коллекцию примерами.
func (c *Client) SeedPlants(ctx context.Context) (SeedResult, error) {
	var resp SeedResult
	if err := c.do(ctx, http.MethodPost, "/api/plants/seed", nil, &resp); err != nil {
		return SeedResult{}, err
	}
	return resp, nil
}

// ---- низкоуровневый обмен ----

type envelope struct {
	Error    *APIError       `json:"error"`
	Response json.RawMessage `json:"response"`
	Data     json.RawMessage `json:"data"`
}

// do выполняет запрос и разбирает поле response конверта в out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	env, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out != nil && len(env.Response) > 0 {
		if err := json.Unmarshal(env.Response, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// doData — как do, но для поля data (списки и объекты).
func (c *Client) doData(ctx context.Context, method, path string, out any) error {
	env, err := c.roundTrip(ctx, method, path, nil)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (envelope, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return envelope{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("decode envelope (status %d): %w", res.StatusCode, err)
	}
	if env.Error != nil {
		env.Error.HTTP = res.StatusCode
		return envelope{}, env.Error
	}
	if res.StatusCode >= 400 {
		return envelope{}, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return env, nil
}
