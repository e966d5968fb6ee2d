package services

import (
	"context"
	"fmt"
	"sync"

	"transactions-api/apperrors"
	"transactions-api/models"
	"transactions-api/utils"

	"github.com/sirupsen/logrus"
)

// TransactionService records single transactions, enforcing type validity
// and the solvency invariant: an outcome must never drive the total balance
// below zero.
type TransactionService struct {
	categories CategoryStore
	store      TransactionStore
	balance    *BalanceService

	// mu serializes the balance check against the subsequent write so two
	// concurrent outcomes cannot both pass the check on a stale total.
	// This guards a single API instance; see DESIGN.md.
	mu sync.Mutex
}

func NewTransactionService(categories CategoryStore, store TransactionStore, balance *BalanceService) *TransactionService {
	return &TransactionService{
		categories: categories,
		store:      store,
		balance:    balance,
	}
}

// Record persists one transaction. The category is resolved (and created if
// missing) before any validation runs, so a category created here survives
// even when the transaction itself is rejected. That matches the documented
// behavior of the ledger: category resolution is idempotent and safe to keep.
func (s *TransactionService) Record(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	if req.Type != models.TypeIncome && req.Type != models.TypeOutcome {
		return nil, apperrors.NewValidation("unknown transaction type")
	}
	if req.Value.IsNegative() {
		return nil, apperrors.NewValidation("transaction value must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Type == models.TypeOutcome {
		balance, err := s.balance.Compute(ctx)
		if err != nil {
			return nil, fmt.Errorf("compute balance: %w", err)
		}
		if balance.Total.Sub(req.Value).IsNegative() {
			return nil, &apperrors.InsufficientBalanceError{
				Total:     balance.Total,
				Requested: req.Value,
			}
		}
	}

	transaction, err := s.store.Create(ctx, models.TransactionFields{
		Title:      req.Title,
		Type:       req.Type,
		Value:      req.Value,
		CategoryID: &category.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("persist transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"id":       transaction.ID,
		"type":     transaction.Type,
		"value":    utils.SafeAmount(transaction.Value),
		"category": category.Title,
	}).Info("Transaction recorded")

	return transaction, nil
}

// resolveCategory looks a category up by exact title and creates it when
// absent.
func (s *TransactionService) resolveCategory(ctx context.Context, title string) (*models.Category, error) {
	category, err := s.categories.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category != nil {
		return category, nil
	}

	category, err = s.categories.Create(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	logrus.WithField("title", title).Info("Category created")
	return category, nil
}
