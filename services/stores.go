package services

import (
	"context"

	"transactions-api/models"
)

// CategoryStore persists category records. FindByTitle returns nil when no
// category carries the given title.
type CategoryStore interface {
	FindByTitle(ctx context.Context, title string) (*models.Category, error)
	FindByTitles(ctx context.Context, titles []string) ([]models.Category, error)
	Create(ctx context.Context, title string) (*models.Category, error)
	CreateMany(ctx context.Context, titles []string) ([]models.Category, error)
}

// TransactionStore persists transaction records. CreateMany commits the whole
// batch atomically and preserves input order in its result.
type TransactionStore interface {
	FindAll(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, fields models.TransactionFields) (*models.Transaction, error)
	CreateMany(ctx context.Context, fields []models.TransactionFields) ([]models.Transaction, error)
}
