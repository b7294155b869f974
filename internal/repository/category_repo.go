package repository

import (
	"context"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByName returns all categories sorted ascending by name.
func (r *CategoryRepository) ListByName(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, category_name, created_at FROM categories ORDER BY category_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.CategoryName, &c.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, pgx.ErrNoRows
	}

	row := r.db.QueryRow(ctx,
		`SELECT id, category_name, created_at FROM categories WHERE id = $1`, n)

	var c domain.Category
	if err := row.Scan(&c.ID, &c.CategoryName, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO categories (category_name) VALUES ($1) RETURNING id, created_at`,
		c.CategoryName,
	).Scan(&c.ID, &c.CreatedAt)
}

// Replace overwrites the category at id; no-op when nothing matches.
func (r *CategoryRepository) Replace(ctx context.Context, id string, c *domain.Category) error {
	n, ok := parseID(id)
	if !ok {
		return nil
	}

	_, err := r.db.Exec(ctx,
		`UPDATE categories SET category_name = $1 WHERE id = $2`, c.CategoryName, n)
	return err
}

// Delete removes the category only. Tasks referencing its name keep the
// now dangling name.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	n, ok := parseID(id)
	if !ok {
		return nil
	}

	_, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, n)
	return err
}
