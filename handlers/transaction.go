package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"transactions-api/apperrors"
	"transactions-api/models"
	"transactions-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TransactionHandler struct {
	Recorder  *services.TransactionService
	Importer  *services.ImportService
	Balance   *services.BalanceService
	Store     services.TransactionStore
	WS        *WSHandler
	UploadDir string
}

func NewTransactionHandler(
	recorder *services.TransactionService,
	importer *services.ImportService,
	balance *services.BalanceService,
	store services.TransactionStore,
	ws *WSHandler,
	uploadDir string,
) *TransactionHandler {
	return &TransactionHandler{
		Recorder:  recorder,
		Importer:  importer,
		Balance:   balance,
		Store:     store,
		WS:        ws,
		UploadDir: uploadDir,
	}
}

// List returns every transaction together with the computed balance.
func (h *TransactionHandler) List(c *gin.Context) {
	transactions, err := h.Store.FindAll(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to list transactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	balance, err := h.Balance.Compute(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to compute balance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"balance":      balance,
	})
}

// Create records a single transaction.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.Recorder.Record(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	h.WS.BroadcastLedgerEvent("transaction_created", 1)
	c.JSON(http.StatusCreated, transaction)
}

// Import ingests a CSV file of transactions uploaded as multipart form data
// under the "file" field.
func (h *TransactionHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing upload file"})
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0750); err != nil {
		logrus.WithError(err).Error("Failed to create upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	// Drop the client-supplied name; the importer removes the file once read.
	dest := filepath.Join(h.UploadDir, uuid.New().String()+".csv")
	if err := c.SaveUploadedFile(file, dest); err != nil {
		logrus.WithError(err).Error("Failed to save upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	transactions, err := h.Importer.ImportFile(c.Request.Context(), dest)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	h.WS.BroadcastLedgerEvent("transactions_imported", len(transactions))
	c.JSON(http.StatusCreated, transactions)
}
