package services

import (
	"context"
	"fmt"

	"transactions-api/models"

	"github.com/shopspring/decimal"
)

// BalanceService derives the aggregate balance from the full transaction set.
// The balance is recomputed on every call and never cached.
type BalanceService struct {
	transactions TransactionStore
}

func NewBalanceService(transactions TransactionStore) *BalanceService {
	return &BalanceService{transactions: transactions}
}

// Compute reads all transactions, partitions them by type and sums each
// partition with exact decimal arithmetic. Total is income minus outcome.
func (s *BalanceService) Compute(ctx context.Context) (models.Balance, error) {
	transactions, err := s.transactions.FindAll(ctx)
	if err != nil {
		return models.Balance{}, fmt.Errorf("load transactions: %w", err)
	}

	income := decimal.Zero
	outcome := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			income = income.Add(t.Value)
		case models.TypeOutcome:
			outcome = outcome.Add(t.Value)
		}
	}

	return models.Balance{
		Income:  income,
		Outcome: outcome,
		Total:   income.Sub(outcome),
	}, nil
}
