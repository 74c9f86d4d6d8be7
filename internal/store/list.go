package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/borgespro/golist/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	var validAt sql.NullTime
	err := scanner.Scan(
		&l.ID, &l.OwnerID, &l.Name, &validAt, &l.CreatedAt, &l.UpdatedAt,
		&l.ItemsQty, &l.ProductsQty, &l.TotalValue,
	)
	if err != nil {
		return nil, err
	}
	if validAt.Valid {
		l.ValidAt = &validAt.Time
	}
	return &l, nil
}

// Every list read carries the aggregates, computed from the current
// items at query time. They are never written anywhere.
const listSelect = `
SELECT l.id, l.owner_id, l.name, l.valid_at, l.created_at, l.updated_at,
       COUNT(i.id),
       COALESCE(SUM(i.quantity), 0),
       COALESCE(SUM(i.quantity * COALESCE(p.unit_price, 0)), 0)
FROM lists l
LEFT JOIN items i ON i.list_id = l.id
LEFT JOIN products p ON p.id = i.product_id`

var listOrderFields = map[string]string{
	"name":       "l.name",
	"valid_at":   "l.valid_at",
	"created_at": "l.created_at",
}

func (s *ListStore) Create(ownerID int64, name string, validAt *time.Time) (*model.List, error) {
	var vAt sql.NullTime
	if validAt != nil {
		vAt = sql.NullTime{Time: validAt.UTC(), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO lists (owner_id, name, valid_at) VALUES (?, ?, ?)`,
		ownerID, name, vAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ownerID, id)
}

// GetByID returns the list with fresh aggregates, only if it belongs to
// ownerID. A list owned by someone else looks exactly like a missing one.
func (s *ListStore) GetByID(ownerID, id int64) (*model.List, error) {
	row := s.db.QueryRow(listSelect+` WHERE l.id = ? AND l.owner_id = ? GROUP BY l.id`, id, ownerID)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ListStore) List(ownerID int64, opts QueryOptions) ([]model.List, int, error) {
	where := ` WHERE l.owner_id = ?`
	args := []any{ownerID}
	if opts.Search != "" {
		where += ` AND lower(l.name) LIKE ?`
		args = append(args, searchPattern(opts.Search))
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM lists l`+where, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count lists: %w", err)
	}

	order := orderClause(listOrderFields, opts.Ordering, "l.name ASC, l.id ASC")
	query := listSelect + where + ` GROUP BY l.id ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, PageSize, opts.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, count, rows.Err()
}

func (s *ListStore) Update(ownerID, id int64, name string, validAt *time.Time) (*model.List, error) {
	var vAt sql.NullTime
	if validAt != nil {
		vAt = sql.NullTime{Time: validAt.UTC(), Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE lists SET name = ?, valid_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`,
		name, vAt, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return s.GetByID(ownerID, id)
}

// Delete removes the list. Its items go with it in the same statement
// via the schema's cascade, so readers never observe a half-deleted list.
func (s *ListStore) Delete(ownerID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM lists WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}
