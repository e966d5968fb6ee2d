package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"transactions-api/models"
	"transactions-api/utils"

	"github.com/google/uuid"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// FindAll returns every transaction in the ledger, oldest first.
func (r *TransactionRepository) FindAll(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, title, type, value, category_id, created_at, updated_at
		FROM transactions
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find all transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// Create persists a single transaction.
func (r *TransactionRepository) Create(ctx context.Context, fields models.TransactionFields) (*models.Transaction, error) {
	transaction := newTransaction(fields)

	query := `
		INSERT INTO transactions (id, title, type, value, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, query,
		transaction.ID, transaction.Title, transaction.Type, transaction.Value,
		nullableID(transaction.CategoryID), transaction.CreatedAt, transaction.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	return &transaction, nil
}

// CreateMany persists the whole batch in one transaction, preserving input
// order in the result.
func (r *TransactionRepository) CreateMany(ctx context.Context, fields []models.TransactionFields) ([]models.Transaction, error) {
	if len(fields) == 0 {
		return []models.Transaction{}, nil
	}

	transactions := make([]models.Transaction, 0, len(fields))
	err := utils.WithTransaction(r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO transactions (id, title, type, value, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for _, f := range fields {
			transaction := newTransaction(f)
			if _, err := tx.ExecContext(ctx, query,
				transaction.ID, transaction.Title, transaction.Type, transaction.Value,
				nullableID(transaction.CategoryID), transaction.CreatedAt, transaction.UpdatedAt,
			); err != nil {
				return fmt.Errorf("create transaction %q: %w", f.Title, err)
			}
			transactions = append(transactions, transaction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func newTransaction(fields models.TransactionFields) models.Transaction {
	return models.Transaction{
		ID:         uuid.New().String(),
		Title:      fields.Title,
		Type:       fields.Type,
		Value:      fields.Value,
		CategoryID: fields.CategoryID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func nullableID(id *string) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *id, Valid: true}
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var transaction models.Transaction
	var categoryID sql.NullString
	if err := rows.Scan(
		&transaction.ID,
		&transaction.Title,
		&transaction.Type,
		&transaction.Value,
		&categoryID,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	); err != nil {
		return models.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	if categoryID.Valid {
		transaction.CategoryID = &categoryID.String
	}
	return transaction, nil
}
