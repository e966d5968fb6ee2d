package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"transactions-api/models"
	"transactions-api/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindByTitle returns the category with the exact title, or nil when absent.
func (r *CategoryRepository) FindByTitle(ctx context.Context, title string) (*models.Category, error) {
	query := `
		SELECT id, title, created_at, updated_at
		FROM categories
		WHERE title = $1
	`

	var category models.Category
	err := r.db.QueryRowContext(ctx, query, title).Scan(
		&category.ID,
		&category.Title,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by title: %w", err)
	}

	return &category, nil
}

// FindByTitles returns every category whose title is in the given set.
func (r *CategoryRepository) FindByTitles(ctx context.Context, titles []string) ([]models.Category, error) {
	if len(titles) == 0 {
		return []models.Category{}, nil
	}

	query := `
		SELECT id, title, created_at, updated_at
		FROM categories
		WHERE title = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(titles))
	if err != nil {
		return nil, fmt.Errorf("find categories by titles: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Title, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Create persists a single category with the given title.
func (r *CategoryRepository) Create(ctx context.Context, title string) (*models.Category, error) {
	category := &models.Category{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO categories (id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, category.ID, category.Title, category.CreatedAt, category.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

// CreateMany persists all given titles in one batch write. The whole batch
// commits or rolls back together.
func (r *CategoryRepository) CreateMany(ctx context.Context, titles []string) ([]models.Category, error) {
	if len(titles) == 0 {
		return []models.Category{}, nil
	}

	categories := make([]models.Category, 0, len(titles))
	err := utils.WithTransaction(r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO categories (id, title, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`
		for _, title := range titles {
			category := models.Category{
				ID:        uuid.New().String(),
				Title:     title,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if _, err := tx.ExecContext(ctx, query, category.ID, category.Title, category.CreatedAt, category.UpdatedAt); err != nil {
				return fmt.Errorf("create category %q: %w", title, err)
			}
			categories = append(categories, category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}
