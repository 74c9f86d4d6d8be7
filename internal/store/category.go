package store

import (
	"database/sql"
	"fmt"

	"github.com/borgespro/golist/internal/model"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(scanner interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	err := scanner.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categoryCols = `id, owner_id, title, description, created_at, updated_at`

var categoryOrderFields = map[string]string{
	"title":      "title",
	"created_at": "created_at",
}

func (s *CategoryStore) Create(ownerID int64, title, description string) (*model.Category, error) {
	result, err := s.db.Exec(
		`INSERT INTO categories (owner_id, title, description) VALUES (?, ?, ?)`,
		ownerID, title, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ownerID, id)
}

// GetByID returns the category only if it belongs to ownerID. A record
// owned by someone else is reported the same way as a missing one.
func (s *CategoryStore) GetByID(ownerID, id int64) (*model.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// List returns one page of the owner's categories plus the total count
// of matches.
func (s *CategoryStore) List(ownerID int64, opts QueryOptions) ([]model.Category, int, error) {
	where := `WHERE owner_id = ?`
	args := []any{ownerID}
	if opts.Search != "" {
		where += ` AND lower(title) LIKE ?`
		args = append(args, searchPattern(opts.Search))
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories `+where, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	order := orderClause(categoryOrderFields, opts.Ordering, "title ASC")
	query := `SELECT ` + categoryCols + ` FROM categories ` + where +
		` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, PageSize, opts.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, count, rows.Err()
}

func (s *CategoryStore) Update(ownerID, id int64, title, description string) (*model.Category, error) {
	_, err := s.db.Exec(
		`UPDATE categories SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`,
		title, description, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetByID(ownerID, id)
}

// Delete removes the category. Dependent products survive with their
// category reference set to NULL by the schema.
func (s *CategoryStore) Delete(ownerID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
