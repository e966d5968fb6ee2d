package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"transactions-api/models"
	"transactions-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCategoryStore struct {
	categories []models.Category
}

func (m *memCategoryStore) FindByTitle(_ context.Context, title string) (*models.Category, error) {
	for i := range m.categories {
		if m.categories[i].Title == title {
			c := m.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryStore) FindByTitles(_ context.Context, titles []string) ([]models.Category, error) {
	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[t] = true
	}
	found := []models.Category{}
	for _, c := range m.categories {
		if wanted[c.Title] {
			found = append(found, c)
		}
	}
	return found, nil
}

func (m *memCategoryStore) Create(_ context.Context, title string) (*models.Category, error) {
	c := models.Category{ID: uuid.New().String(), Title: title, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.categories = append(m.categories, c)
	return &c, nil
}

func (m *memCategoryStore) CreateMany(_ context.Context, titles []string) ([]models.Category, error) {
	created := []models.Category{}
	for _, title := range titles {
		c, _ := m.Create(context.Background(), title)
		created = append(created, *c)
	}
	return created, nil
}

type memTransactionStore struct {
	transactions []models.Transaction
}

func (m *memTransactionStore) FindAll(_ context.Context) ([]models.Transaction, error) {
	out := make([]models.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out, nil
}

func (m *memTransactionStore) Create(_ context.Context, f models.TransactionFields) (*models.Transaction, error) {
	t := models.Transaction{
		ID: uuid.New().String(), Title: f.Title, Type: f.Type, Value: f.Value,
		CategoryID: f.CategoryID, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.transactions = append(m.transactions, t)
	return &t, nil
}

func (m *memTransactionStore) CreateMany(_ context.Context, fields []models.TransactionFields) ([]models.Transaction, error) {
	created := []models.Transaction{}
	for _, f := range fields {
		t, _ := m.Create(context.Background(), f)
		created = append(created, *t)
	}
	return created, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memTransactionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	categories := &memCategoryStore{}
	store := &memTransactionStore{}
	balance := services.NewBalanceService(store)
	recorder := services.NewTransactionService(categories, store, balance)
	importer := services.NewImportService(categories, store)

	h := NewTransactionHandler(recorder, importer, balance, store, nil, t.TempDir())

	router := gin.New()
	router.GET("/transactions", h.List)
	router.POST("/transactions", h.Create)
	router.POST("/transactions/import", h.Import)
	return router, store
}

func TestCreateTransaction(t *testing.T) {
	router, store := newTestRouter(t)

	body := `{"title":"Salary","value":2500,"type":"income","category":"Work"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Salary", got.Title)
	assert.NotEmpty(t, got.ID)
	require.Len(t, store.transactions, 1)
}

func TestCreateTransactionUnknownType(t *testing.T) {
	router, store := newTestRouter(t)

	body := `{"title":"Mystery","value":10,"type":"transfer","category":"Misc"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown transaction type")
	assert.Empty(t, store.transactions)
}

func TestCreateTransactionInsufficientBalance(t *testing.T) {
	router, store := newTestRouter(t)
	store.transactions = append(store.transactions, models.Transaction{
		Type: models.TypeIncome, Value: decimal.NewFromInt(100),
	})

	body := `{"title":"Rent","value":150,"type":"outcome","category":"Housing"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient balance")
	assert.Len(t, store.transactions, 1)
}

func TestListTransactionsWithBalance(t *testing.T) {
	router, store := newTestRouter(t)
	store.transactions = append(store.transactions,
		models.Transaction{ID: uuid.New().String(), Type: models.TypeIncome, Value: decimal.NewFromInt(300)},
		models.Transaction{ID: uuid.New().String(), Type: models.TypeOutcome, Value: decimal.NewFromInt(120)},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
		Balance      models.Balance       `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Transactions, 2)
	assert.True(t, resp.Balance.Total.Equal(decimal.NewFromInt(180)))
}

func TestImportTransactions(t *testing.T) {
	router, store := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "transactions.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("title,type,value,category\nLoan,income,1500,Bank\nRent,outcome,400,Housing\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var imported []models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &imported))
	assert.Len(t, imported, 2)
	assert.Len(t, store.transactions, 2)
}

func TestImportTransactionsMissingFile(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions/import", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
