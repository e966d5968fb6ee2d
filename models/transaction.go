package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeOutcome = "outcome"
)

// Transaction is a single ledger entry. Transactions are immutable once
// persisted; there are no update or delete operations.
type Transaction struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	CategoryID *string         `json:"category_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TransactionFields carries the caller-supplied attributes for a new
// transaction; id and timestamps are generated at persist time.
type TransactionFields struct {
	Title      string
	Type       string
	Value      decimal.Decimal
	CategoryID *string
}

type CreateTransactionRequest struct {
	Title    string          `json:"title" binding:"required"`
	Value    decimal.Decimal `json:"value"`
	Type     string          `json:"type" binding:"required"`
	Category string          `json:"category" binding:"required"`
}

// ImportRow is one line of the uploaded CSV. The first line of the file is
// a header and is skipped by the decoder.
type ImportRow struct {
	Title    string          `csv:"title"`
	Type     string          `csv:"type"`
	Value    decimal.Decimal `csv:"value"`
	Category string          `csv:"category"`
}
