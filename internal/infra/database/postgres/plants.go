package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/rozennrd/dave-backend/internal/domain"
)

// Порядок колонок единый для всех SELECT/RETURNING — под scanPlant.
var plantColumns = []string{
	"id", "owner_id", "common_name", "scientific_name",
	"plant_name", "family", "type", "image_url", "care_level", "watering", "notes",
	"sunlight", "soil",
	"indoor", "poisonous_to_humans", "poisonous_to_pets", "drought_tolerant",
	"created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlant(row rowScanner) (domain.Plant, error) {
	var p domain.Plant
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.CommonName, &p.ScientificName,
		&p.PlantName, &p.Family, &p.Type, &p.ImageURL, &p.CareLevel, &p.Watering, &p.Notes,
		&p.Sunlight, &p.Soil,
		&p.Indoor, &p.PoisonousToHumans, &p.PoisonousToPets, &p.DroughtTolerant,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *PGRepo) plantsTable() string { return fmt.Sprintf("%s.plants", r.schema) }

func (r *PGRepo) CreatePlant(ctx context.Context, p domain.Plant) (domain.Plant, error) {
	q := r.qb().Insert(r.plantsTable()).
		Columns("owner_id", "common_name", "scientific_name",
			"plant_name", "family", "type", "image_url", "care_level", "watering", "notes",
			"sunlight", "soil",
			"indoor", "poisonous_to_humans", "poisonous_to_pets", "drought_tolerant").
		Values(p.OwnerID, p.CommonName, p.ScientificName,
			p.PlantName, p.Family, p.Type, p.ImageURL, p.CareLevel, p.Watering, p.Notes,
			p.Sunlight, p.Soil,
			p.Indoor, p.PoisonousToHumans, p.PoisonousToPets, p.DroughtTolerant).
		Suffix("RETURNING " + joinColumns(plantColumns))

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreatePlant", sqlStr, args)

	start := time.Now()
	out, err := scanPlant(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreatePlant scan error after %s: %v", time.Since(start), err)
		return domain.Plant{}, err
	}
	r.logger.Printf("CreatePlant ok in %s id=%s name=%q", time.Since(start), out.ID, out.CommonName)
	out.Normalize()
	return out, nil
}

// Без ACL: владение сверяет обработчик (404 раньше 403).
func (r *PGRepo) PlantByID(ctx context.Context, id domain.PlantID) (domain.Plant, error) {
	q := r.qb().Select(plantColumns...).
		From(r.plantsTable()).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("PlantByID", sqlStr, args)

	start := time.Now()
	p, err := scanPlant(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("PlantByID not found in %s id=%s", time.Since(start), id)
			return domain.Plant{}, domain.ErrNotFound
		}
		r.logger.Printf("PlantByID scan error after %s: %v", time.Since(start), err)
		return domain.Plant{}, err
	}
	r.logger.Printf("PlantByID ok in %s id=%s", time.Since(start), p.ID)
	p.Normalize()
	return p, nil
}

func (r *PGRepo) PlantsByOwner(ctx context.Context, owner domain.UserID) ([]domain.Plant, error) {
	q := r.qb().Select(plantColumns...).
		From(r.plantsTable()).
		Where(sq.Eq{"owner_id": owner}).
		OrderBy("created_at ASC", "id ASC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("PlantsByOwner", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("PlantsByOwner query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	// пустая коллекция — валидный результат: возвращаем [], не nil
	res := make([]domain.Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			r.logger.Printf("PlantsByOwner scan error: %v", err)
			return nil, err
		}
		p.Normalize()
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("PlantsByOwner rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("PlantsByOwner ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

// UpdatePlant — merge: в SET попадают только поля из patch. owner в WHERE —
// подстраховка от гонки между проверкой владения и мутацией.
func (r *PGRepo) UpdatePlant(ctx context.Context, id domain.PlantID, owner domain.UserID, patch domain.PlantPatch) error {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	for k, v := range patch {
		set[k] = patchValue(k, v)
	}

	q := r.qb().Update(r.plantsTable()).
		SetMap(set).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"owner_id": owner}})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdatePlant", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("UpdatePlant exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("UpdatePlant no rows affected in %s id=%s", time.Since(start), id)
		return domain.ErrNotFound
	}
	r.logger.Printf("UpdatePlant ok in %s id=%s fields=%d", time.Since(start), id, len(patch))
	return nil
}

func (r *PGRepo) DeletePlant(ctx context.Context, id domain.PlantID, owner domain.UserID) error {
	q := r.qb().Delete(r.plantsTable()).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"owner_id": owner}})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeletePlant", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeletePlant exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("DeletePlant no rows affected in %s id=%s", time.Since(start), id)
		return domain.ErrNotFound
	}
	r.logger.Printf("DeletePlant ok in %s id=%s", time.Since(start), id)
	return nil
}

// SeedPlants — идемпотентный посев стартового набора одной транзакцией.
// Берём advisory-лок по владельцу, поэтому два конкурентных первых вызова
// сериализуются: проигравший увидит записи победителя и вставит 0.
func (r *PGRepo) SeedPlants(ctx context.Context, owner domain.UserID, plants []domain.Plant) (int, error) {
	start := time.Now()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Printf("SeedPlants begin error: %v", err)
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", owner.String()); err != nil {
		r.logger.Printf("SeedPlants lock error after %s: %v", time.Since(start), err)
		return 0, err
	}

	var n int
	countSQL := fmt.Sprintf("SELECT count(*) FROM %s WHERE owner_id = $1", r.plantsTable())
	if err := tx.QueryRow(ctx, countSQL, owner).Scan(&n); err != nil {
		r.logger.Printf("SeedPlants count error after %s: %v", time.Since(start), err)
		return 0, err
	}
	if n > 0 {
		if err := tx.Commit(ctx); err != nil {
			return 0, err
		}
		r.logger.Printf("SeedPlants skipped in %s owner=%s existing=%d", time.Since(start), owner, n)
		return 0, nil
	}

	q := r.qb().Insert(r.plantsTable()).
		Columns("owner_id", "common_name", "scientific_name",
			"plant_name", "family", "type", "image_url", "care_level", "watering", "notes",
			"sunlight", "soil",
			"indoor", "poisonous_to_humans", "poisonous_to_pets", "drought_tolerant")
	for _, p := range plants {
		q = q.Values(owner, p.CommonName, p.ScientificName,
			p.PlantName, p.Family, p.Type, p.ImageURL, p.CareLevel, p.Watering, p.Notes,
			p.Sunlight, p.Soil,
			p.Indoor, p.PoisonousToHumans, p.PoisonousToPets, p.DroughtTolerant)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("SeedPlants", sqlStr, args)

	if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
		r.logger.Printf("SeedPlants insert error after %s: %v", time.Since(start), err)
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		r.logger.Printf("SeedPlants commit error after %s: %v", time.Since(start), err)
		return 0, err
	}
	r.logger.Printf("SeedPlants ok in %s owner=%s added=%d", time.Since(start), owner, len(plants))
	return len(plants), nil
}

// patchValue приводит значения из JSON-патча к тому, что умеет pgx:
// массивные поля приходят как []any, колонки у нас text[].
func patchValue(key string, v any) any {
	switch key {
	case "scientific_name", "sunlight", "soil":
		if items, ok := v.([]any); ok {
			ss := make([]string, 0, len(items))
			for _, it := range items {
				if s, ok := it.(string); ok {
					ss = append(ss, s)
				}
			}
			return ss
		}
	}
	return v
}

func joinColumns(cols []string) string { return strings.Join(cols, ", ") }
