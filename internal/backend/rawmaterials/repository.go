package rawmaterials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) List(ctx context.Context) ([]domain.RawMaterial, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, stockQuantity FROM RawMaterial ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying raw materials: %w", err)
	}
	defer rows.Close()

	return scanRawMaterials(rows)
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.RawMaterial, error) {
	var m domain.RawMaterial
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, stockQuantity FROM RawMaterial WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.StockQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("raw material not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying raw material %d: %w", id, err)
	}
	return &m, nil
}

func (r *MySQLRepository) Insert(ctx context.Context, name string, stockQuantity int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO RawMaterial (name, stockQuantity) VALUES (?, ?)`, name, stockQuantity)
	if err != nil {
		return 0, fmt.Errorf("inserting raw material: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted raw material id: %w", err)
	}
	return int(id), nil
}

func (r *MySQLRepository) Update(ctx context.Context, id int, name string, stockQuantity int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE RawMaterial SET name = ?, stockQuantity = ? WHERE id = ?`, name, stockQuantity, id)
	if err != nil {
		return fmt.Errorf("updating raw material %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of raw material %d: %w", id, err)
	}
	if affected == 0 {
		// MySQL also reports 0 when the row exists but is unchanged;
		// confirm absence before reporting not found.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM RawMaterial WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting raw material %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of raw material %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("raw material not found")
	}
	return nil
}

func (r *MySQLRepository) IncreaseStock(ctx context.Context, id, quantity int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE RawMaterial SET stockQuantity = stockQuantity + ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("increasing stock of raw material %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking stock increase of raw material %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("raw material not found")
	}
	return nil
}

// DecreaseStock refuses to take stock below zero: the guard is in the
// UPDATE itself so concurrent decreases cannot race past it.
func (r *MySQLRepository) DecreaseStock(ctx context.Context, id, quantity int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE RawMaterial SET stockQuantity = stockQuantity - ? WHERE id = ? AND stockQuantity >= ?`,
		quantity, id, quantity)
	if err != nil {
		return fmt.Errorf("decreasing stock of raw material %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking stock decrease of raw material %d: %w", id, err)
	}
	if affected == 0 {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return apperrors.NewConflictError("insufficient stock")
	}
	return nil
}

func (r *MySQLRepository) SetStock(ctx context.Context, id, quantity int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE RawMaterial SET stockQuantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("setting stock of raw material %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking stock set of raw material %d: %w", id, err)
	}
	if affected == 0 {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
	}
	return nil
}

func (r *MySQLRepository) FindLowStock(ctx context.Context, threshold int) ([]domain.RawMaterial, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, stockQuantity FROM RawMaterial WHERE stockQuantity < ? ORDER BY stockQuantity, id`,
		threshold)
	if err != nil {
		return nil, fmt.Errorf("querying low-stock raw materials: %w", err)
	}
	defer rows.Close()

	return scanRawMaterials(rows)
}

func (r *MySQLRepository) SearchByName(ctx context.Context, name string) ([]domain.RawMaterial, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, stockQuantity FROM RawMaterial WHERE name LIKE CONCAT('%', ?, '%') ORDER BY id`,
		name)
	if err != nil {
		return nil, fmt.Errorf("searching raw materials: %w", err)
	}
	defer rows.Close()

	return scanRawMaterials(rows)
}

func scanRawMaterials(rows *sql.Rows) ([]domain.RawMaterial, error) {
	var materials []domain.RawMaterial
	for rows.Next() {
		var m domain.RawMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.StockQuantity); err != nil {
			return nil, fmt.Errorf("scanning raw material row: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating raw material rows: %w", err)
	}
	return materials, nil
}
