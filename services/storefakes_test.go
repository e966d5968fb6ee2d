package services

import (
	"context"
	"time"

	"transactions-api/models"

	"github.com/google/uuid"
)

// fakeCategoryStore is an in-memory CategoryStore for tests. Error fields
// force the corresponding call to fail.
type fakeCategoryStore struct {
	categories []models.Category

	findByTitleErr  error
	findByTitlesErr error
	createErr       error
	createManyErr   error

	// dropTitles suppresses creation of specific titles, simulating a store
	// that fails to materialize part of a batch.
	dropTitles map[string]bool
}

func (f *fakeCategoryStore) FindByTitle(_ context.Context, title string) (*models.Category, error) {
	if f.findByTitleErr != nil {
		return nil, f.findByTitleErr
	}
	for i := range f.categories {
		if f.categories[i].Title == title {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) FindByTitles(_ context.Context, titles []string) ([]models.Category, error) {
	if f.findByTitlesErr != nil {
		return nil, f.findByTitlesErr
	}
	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[t] = true
	}
	found := []models.Category{}
	for _, c := range f.categories {
		if wanted[c.Title] {
			found = append(found, c)
		}
	}
	return found, nil
}

func (f *fakeCategoryStore) Create(_ context.Context, title string) (*models.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	category := models.Category{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.categories = append(f.categories, category)
	return &category, nil
}

func (f *fakeCategoryStore) CreateMany(_ context.Context, titles []string) ([]models.Category, error) {
	if f.createManyErr != nil {
		return nil, f.createManyErr
	}
	created := []models.Category{}
	for _, title := range titles {
		if f.dropTitles[title] {
			continue
		}
		category := models.Category{
			ID:        uuid.New().String(),
			Title:     title,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		f.categories = append(f.categories, category)
		created = append(created, category)
	}
	return created, nil
}

// fakeTransactionStore is an in-memory TransactionStore for tests.
type fakeTransactionStore struct {
	transactions []models.Transaction

	findAllErr    error
	createErr     error
	createManyErr error
}

func (f *fakeTransactionStore) FindAll(_ context.Context) ([]models.Transaction, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	out := make([]models.Transaction, len(f.transactions))
	copy(out, f.transactions)
	return out, nil
}

func (f *fakeTransactionStore) Create(_ context.Context, fields models.TransactionFields) (*models.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	transaction := models.Transaction{
		ID:         uuid.New().String(),
		Title:      fields.Title,
		Type:       fields.Type,
		Value:      fields.Value,
		CategoryID: fields.CategoryID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.transactions = append(f.transactions, transaction)
	return &transaction, nil
}

func (f *fakeTransactionStore) CreateMany(_ context.Context, fields []models.TransactionFields) ([]models.Transaction, error) {
	if f.createManyErr != nil {
		return nil, f.createManyErr
	}
	created := make([]models.Transaction, 0, len(fields))
	for _, fl := range fields {
		transaction := models.Transaction{
			ID:         uuid.New().String(),
			Title:      fl.Title,
			Type:       fl.Type,
			Value:      fl.Value,
			CategoryID: fl.CategoryID,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		f.transactions = append(f.transactions, transaction)
		created = append(created, transaction)
	}
	return created, nil
}
