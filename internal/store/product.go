package store

import (
	"database/sql"
	"fmt"

	"github.com/borgespro/golist/internal/model"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// ProductQueryOptions adds the category-title equality filter on top of
// the common shaping options.
type ProductQueryOptions struct {
	QueryOptions
	Category string
}

func scanProduct(scanner interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	var categoryID sql.NullInt64
	err := scanner.Scan(&p.ID, &p.OwnerID, &categoryID, &p.Name, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	return &p, nil
}

const productCols = `p.id, p.owner_id, p.category_id, p.name, p.unit_price, p.created_at, p.updated_at`

var productOrderFields = map[string]string{
	"name":       "p.name",
	"unit_price": "p.unit_price",
	"created_at": "p.created_at",
}

func (s *ProductStore) Create(ownerID int64, name string, unitPrice float64, categoryID *int64) (*model.Product, error) {
	var cID sql.NullInt64
	if categoryID != nil {
		cID = sql.NullInt64{Int64: *categoryID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO products (owner_id, category_id, name, unit_price) VALUES (?, ?, ?, ?)`,
		ownerID, cID, name, unitPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ownerID, id)
}

// GetByID returns the product only if it belongs to ownerID.
func (s *ProductStore) GetByID(ownerID, id int64) (*model.Product, error) {
	row := s.db.QueryRow(`SELECT `+productCols+` FROM products p WHERE p.id = ? AND p.owner_id = ?`, id, ownerID)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *ProductStore) List(ownerID int64, opts ProductQueryOptions) ([]model.Product, int, error) {
	from := `FROM products p`
	where := ` WHERE p.owner_id = ?`
	args := []any{ownerID}
	if opts.Search != "" {
		where += ` AND lower(p.name) LIKE ?`
		args = append(args, searchPattern(opts.Search))
	}
	if opts.Category != "" {
		from += ` JOIN categories c ON c.id = p.category_id`
		where += ` AND c.title = ?`
		args = append(args, opts.Category)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) `+from+where, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	order := orderClause(productOrderFields, opts.Ordering, "p.name ASC")
	query := `SELECT ` + productCols + ` ` + from + where +
		` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, PageSize, opts.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, count, rows.Err()
}

func (s *ProductStore) Update(ownerID, id int64, name string, unitPrice float64, categoryID *int64) (*model.Product, error) {
	var cID sql.NullInt64
	if categoryID != nil {
		cID = sql.NullInt64{Int64: *categoryID, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE products SET name = ?, unit_price = ?, category_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`,
		name, unitPrice, cID, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.GetByID(ownerID, id)
}

// Delete removes the product along with any items referencing it.
func (s *ProductStore) Delete(ownerID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
