package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrForeignKey     = 1452
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, stock FROM Product ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	index := make(map[int]int)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	linkRows, err := r.db.QueryContext(ctx, `
		SELECT prm.productId, prm.quantityRequired, rm.id, rm.name, rm.stockQuantity
		FROM ProductRawMaterial prm
		JOIN RawMaterial rm ON rm.id = prm.rawMaterialId
		ORDER BY prm.productId, prm.id`)
	if err != nil {
		return nil, fmt.Errorf("querying product links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var productID int
		var link domain.ProductRawMaterialLink
		if err := linkRows.Scan(&productID, &link.QuantityRequired,
			&link.RawMaterial.ID, &link.RawMaterial.Name, &link.RawMaterial.StockQuantity); err != nil {
			return nil, fmt.Errorf("scanning product link row: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].RawMaterials = append(products[i].RawMaterials, link)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product link rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, stock FROM Product WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying product %d: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT prm.quantityRequired, rm.id, rm.name, rm.stockQuantity
		FROM ProductRawMaterial prm
		JOIN RawMaterial rm ON rm.id = prm.rawMaterialId
		WHERE prm.productId = ?
		ORDER BY prm.id`, id)
	if err != nil {
		return nil, fmt.Errorf("querying links of product %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var link domain.ProductRawMaterialLink
		if err := rows.Scan(&link.QuantityRequired,
			&link.RawMaterial.ID, &link.RawMaterial.Name, &link.RawMaterial.StockQuantity); err != nil {
			return nil, fmt.Errorf("scanning link row of product %d: %w", id, err)
		}
		p.RawMaterials = append(p.RawMaterials, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating link rows of product %d: %w", id, err)
	}

	return &p, nil
}

func (r *MySQLRepository) Insert(ctx context.Context, name string, price decimal.Decimal, stock int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO Product (name, price, stock) VALUES (?, ?, ?)`, name, price, stock)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted product id: %w", err)
	}
	return int(id), nil
}

func (r *MySQLRepository) Update(ctx context.Context, id int, name string, price decimal.Decimal, stock int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE Product SET name = ?, price = ?, stock = ? WHERE id = ?`, name, price, stock, id)
	if err != nil {
		return fmt.Errorf("updating product %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of product %d: %w", id, err)
	}
	if affected == 0 {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Product WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of product %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("product not found")
	}
	return nil
}

// AddLink relies on the unique (productId, rawMaterialId) key for
// link uniqueness and on foreign keys for entity existence.
func (r *MySQLRepository) AddLink(ctx context.Context, productID, rawMaterialID, quantityRequired int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ProductRawMaterial (productId, rawMaterialId, quantityRequired) VALUES (?, ?, ?)`,
		productID, rawMaterialID, quantityRequired)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) {
			switch mysqlErr.Number {
			case mysqlErrDuplicateEntry:
				return apperrors.NewConflictError("raw material already linked to this product")
			case mysqlErrForeignKey:
				return apperrors.NewNotFoundError("product or raw material not found")
			}
		}
		return fmt.Errorf("inserting link %d->%d: %w", productID, rawMaterialID, err)
	}
	return nil
}

func (r *MySQLRepository) UpdateLinkQuantity(ctx context.Context, productID, rawMaterialID, quantity int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ProductRawMaterial SET quantityRequired = ? WHERE productId = ? AND rawMaterialId = ?`,
		quantity, productID, rawMaterialID)
	if err != nil {
		return fmt.Errorf("updating link %d->%d: %w", productID, rawMaterialID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking link update %d->%d: %w", productID, rawMaterialID, err)
	}
	if affected == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM ProductRawMaterial WHERE productId = ? AND rawMaterialId = ?`,
			productID, rawMaterialID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFoundError("link not found")
		}
		if err != nil {
			return fmt.Errorf("checking link existence %d->%d: %w", productID, rawMaterialID, err)
		}
	}
	return nil
}

func (r *MySQLRepository) RemoveLink(ctx context.Context, productID, rawMaterialID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM ProductRawMaterial WHERE productId = ? AND rawMaterialId = ?`,
		productID, rawMaterialID)
	if err != nil {
		return fmt.Errorf("deleting link %d->%d: %w", productID, rawMaterialID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking link delete %d->%d: %w", productID, rawMaterialID, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("link not found")
	}
	return nil
}
