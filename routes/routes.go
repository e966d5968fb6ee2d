package routes

import (
	"database/sql"
	"os"

	"transactions-api/handlers"
	"transactions-api/repositories"
	"transactions-api/services"

	"github.com/gin-gonic/gin"
)

// SetupTransactionRoutes wires the ledger endpoints: listing with balance,
// single-transaction recording and CSV batch import.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	categoryRepo := repositories.NewCategoryRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	balanceService := services.NewBalanceService(transactionRepo)
	transactionService := services.NewTransactionService(categoryRepo, transactionRepo, balanceService)
	importService := services.NewImportService(categoryRepo, transactionRepo)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "tmp/uploads"
	}

	h := handlers.NewTransactionHandler(
		transactionService,
		importService,
		balanceService,
		transactionRepo,
		ws,
		uploadDir,
	)

	rg.GET("/transactions", h.List)
	rg.POST("/transactions", h.Create)
	rg.POST("/transactions/import", h.Import)
}
