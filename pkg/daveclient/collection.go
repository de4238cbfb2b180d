package daveclient

import (
	"context"
	"sync"

	"github.com/rozennrd/dave-backend/internal/domain"
)

// StateKind — фаза жизненного цикла коллекции на клиенте.
type StateKind int

const (
	StateLoading StateKind = iota
	StateSuccess
	StateEmpty
	StateError
)

func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// State — снимок состояния коллекции. Plants заполнен только в Success,
// Message — только в Error.
type State struct {
	Kind    StateKind
	Plants  []domain.Plant
	Message string
}

// PlantsAPI — срез клиента, нужный проекции. Разделён интерфейсом,
// чтобы тесты могли подставить фейк.
type PlantsAPI interface {
	Plants(ctx context.Context) ([]domain.Plant, error)
	CreatePlant(ctx context.Context, p domain.Plant) (string, error)
	UpdatePlant(ctx context.Context, id string, updates map[string]any) error
	DeletePlant(ctx context.Context, id string) error
	SeedPlants(ctx context.Context) (SeedResult, error)
}

var _ PlantsAPI = (*Client)(nil)

// Collection проецирует серверную коллекцию в наблюдаемое состояние.
// Любая мутация при успехе перечитывает список; неудачное удаление тоже
// перечитывает — локальное представление могло разойтись с сервером.
type Collection struct {
	api PlantsAPI

	mu       sync.Mutex
	state    State
	gen      uint64 // номер последнего запущенного чтения
	onChange func(State)
}

// NewCollection создаёт проекцию в состоянии Loading. onChange может быть
// nil; он вызывается вне мьютекса при каждой публикации состояния.
func NewCollection(api PlantsAPI, onChange func(State)) *Collection {
	return &Collection{
		api:      api,
		state:    State{Kind: StateLoading},
		onChange: onChange,
	}
}

// State возвращает текущий снимок.
func (c *Collection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh переводит коллекцию в Loading и перечитывает список.
// Параллельные вызовы допустимы: результат публикует только самый
// поздний из запущенных.
func (c *Collection) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	my := c.gen
	c.state = State{Kind: StateLoading}
	cb := c.onChange
	c.mu.Unlock()
	if cb != nil {
		cb(State{Kind: StateLoading})
	}

	plants, err := c.api.Plants(ctx)

	next := State{}
	switch {
	case err != nil:
		next = State{Kind: StateError, Message: err.Error()}
	case len(plants) == 0:
		next = State{Kind: StateEmpty}
	default:
		next = State{Kind: StateSuccess, Plants: plants}
	}
	c.publish(my, next)
}

// Create добавляет растение. Успех перечитывает коллекцию; ошибка
// возвращается вызывающему, состояние не трогаем.
func (c *Collection) Create(ctx context.Context, p domain.Plant) (string, error) {
	id, err := c.api.CreatePlant(ctx, p)
	if err != nil {
		return "", err
	}
	c.Refresh(ctx)
	return id, nil
}

// Update применяет частичное обновление, при успехе перечитывает.
func (c *Collection) Update(ctx context.Context, id string, updates map[string]any) error {
	if err := c.api.UpdatePlant(ctx, id, updates); err != nil {
		return err
	}
	c.Refresh(ctx)
	return nil
}

// Delete удаляет запись. Перечитываем в обоих исходах: после неудачи
// сервер и клиент могли разойтись.
func (c *Collection) Delete(ctx context.Context, id string) error {
	err := c.api.DeletePlant(ctx, id)
	c.Refresh(ctx)
	return err
}

// Seed заполняет пустую коллекцию примерами и перечитывает её.
func (c *Collection) Seed(ctx context.Context) (SeedResult, error) {
	res, err := c.api.SeedPlants(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	c.Refresh(ctx)
	return res, nil
}

// publish записывает состояние, если чтение my всё ещё самое позднее.
func (c *Collection) publish(my uint64, next State) {
	c.mu.Lock()
	if my != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = next
	cb := c.onChange
	c.mu.Unlock()
	if cb != nil {
		cb(next)
	}
}
