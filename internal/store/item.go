package store

import (
	"database/sql"
	"fmt"

	"github.com/borgespro/golist/internal/model"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	var pID, pOwnerID, pCategoryID sql.NullInt64
	var pName sql.NullString
	var pUnitPrice sql.NullFloat64
	var pCreatedAt, pUpdatedAt sql.NullTime

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
		&pID, &pOwnerID, &pCategoryID, &pName, &pUnitPrice, &pCreatedAt, &pUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pID.Valid {
		p := model.Product{
			ID:        pID.Int64,
			OwnerID:   pOwnerID.Int64,
			Name:      pName.String,
			UnitPrice: pUnitPrice.Float64,
			CreatedAt: pCreatedAt.Time,
			UpdatedAt: pUpdatedAt.Time,
		}
		if pCategoryID.Valid {
			p.CategoryID = &pCategoryID.Int64
		}
		item.Product = &p
		item.TotalPrice = item.Quantity * p.UnitPrice
	}
	return &item, nil
}

// Items have no owner column of their own; every query joins through
// the parent list and filters on its owner.
const itemSelect = `
SELECT i.id, i.list_id, i.quantity, i.created_at, i.updated_at,
       p.id, p.owner_id, p.category_id, p.name, p.unit_price, p.created_at, p.updated_at
FROM items i
JOIN lists l ON l.id = i.list_id
LEFT JOIN products p ON p.id = i.product_id`

func (s *ItemStore) Create(ownerID, listID int64, productID *int64, quantity float64) (*model.Item, error) {
	var pID sql.NullInt64
	if productID != nil {
		pID = sql.NullInt64{Int64: *productID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO items (list_id, product_id, quantity) VALUES (?, ?, ?)`,
		listID, pID, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ownerID, id)
}

// GetByID returns the item only if its parent list belongs to ownerID.
func (s *ItemStore) GetByID(ownerID, id int64) (*model.Item, error) {
	row := s.db.QueryRow(itemSelect+` WHERE i.id = ? AND l.owner_id = ?`, id, ownerID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListByList returns one page of the list's items in creation order.
// Search matches the referenced product's name.
func (s *ItemStore) ListByList(ownerID, listID int64, opts QueryOptions) ([]model.Item, int, error) {
	where := ` WHERE i.list_id = ? AND l.owner_id = ?`
	args := []any{listID, ownerID}
	if opts.Search != "" {
		where += ` AND lower(p.name) LIKE ?`
		args = append(args, searchPattern(opts.Search))
	}

	countQuery := `SELECT COUNT(*) FROM items i JOIN lists l ON l.id = i.list_id LEFT JOIN products p ON p.id = i.product_id` + where
	var count int
	if err := s.db.QueryRow(countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := itemSelect + where + ` ORDER BY i.created_at ASC, i.id ASC LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, PageSize, opts.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, count, rows.Err()
}

func (s *ItemStore) Update(ownerID, id int64, productID *int64, quantity float64) (*model.Item, error) {
	var pID sql.NullInt64
	if productID != nil {
		pID = sql.NullInt64{Int64: *productID, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE items SET product_id = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND list_id IN (SELECT id FROM lists WHERE owner_id = ?)`,
		pID, quantity, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(ownerID, id)
}

func (s *ItemStore) Delete(ownerID, id int64) error {
	_, err := s.db.Exec(
		`DELETE FROM items WHERE id = ? AND list_id IN (SELECT id FROM lists WHERE owner_id = ?)`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
