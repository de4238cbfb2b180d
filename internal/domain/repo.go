package domain

import "context"

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	CreateUser(ctx context.Context, login string, passHash []byte) (User, error)
	UserByLogin(ctx context.Context, login string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
}

// Хранилище записей о растениях. Проверки владения (404 до 403) делает
// обработчик: сначала PlantByID, потом сверка OwnerID. Update/Delete всё
// равно фильтруют по owner в WHERE — подстраховка от гонки между проверкой
// и мутацией.
type PlantsRepo interface {
	// Присваивает id и таймстемпы, возвращает сохранённую запись.
	CreatePlant(ctx context.Context, p Plant) (Plant, error)
	// Без ACL: владение сверяет вызывающий. ErrNotFound если записи нет.
	PlantByID(ctx context.Context, id PlantID) (Plant, error)
	// Все записи владельца; пустая коллекция — пустой срез, не ошибка.
	PlantsByOwner(ctx context.Context, owner UserID) ([]Plant, error)
	// Merge: меняются только поля из patch. ErrNotFound если запись исчезла.
	UpdatePlant(ctx context.Context, id PlantID, owner UserID, patch PlantPatch) error
	DeletePlant(ctx context.Context, id PlantID, owner UserID) error

	// Идемпотентный посев стартового набора: если у владельца уже есть хоть
	// одна запись — ничего не вставляет и возвращает 0, иначе атомарно
	// вставляет все plants и возвращает их количество.
	SeedPlants(ctx context.Context, owner UserID, plants []Plant) (int, error)
}
