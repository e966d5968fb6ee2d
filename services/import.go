package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"transactions-api/apperrors"
	"transactions-api/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// ImportService ingests a batch of transactions from an uploaded CSV file,
// creating any categories the rows reference that do not exist yet. Import is
// a trusted administrative path: no solvency check is applied, so outcome
// rows may drive the balance negative.
type ImportService struct {
	categories   CategoryStore
	transactions TransactionStore
}

func NewImportService(categories CategoryStore, transactions TransactionStore) *ImportService {
	return &ImportService{
		categories:   categories,
		transactions: transactions,
	}
}

// ImportFile reads the CSV at path and persists one transaction per row,
// returning them in input order. The file is removed once consumed,
// whether the import succeeds or fails.
func (s *ImportService) ImportFile(ctx context.Context, path string) ([]models.Transaction, error) {
	rows, err := s.readRows(path)
	if err != nil {
		return nil, apperrors.NewImport(err)
	}

	titleToID, err := s.resolveCategories(ctx, rows)
	if err != nil {
		return nil, err
	}

	fields := make([]models.TransactionFields, len(rows))
	for i, row := range rows {
		var categoryID *string
		if id, ok := titleToID[row.Category]; ok {
			categoryID = &id
		}

		fields[i] = models.TransactionFields{
			Title:      row.Title,
			Type:       row.Type,
			Value:      row.Value,
			CategoryID: categoryID,
		}
	}

	transactions, err := s.transactions.CreateMany(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("persist imported transactions: %w", err)
	}

	logrus.WithField("count", len(transactions)).Info("Batch import completed")
	return transactions, nil
}

// readRows decodes the CSV into typed rows. The first line is a header. The
// file handle is released and the temporary upload removed regardless of
// outcome.
func (s *ImportService) readRows(path string) ([]models.ImportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer func() {
		file.Close()
		if err := os.Remove(path); err != nil {
			logrus.WithError(err).Warn("Failed to remove import file")
		}
	}()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	var rows []models.ImportRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}

	for i := range rows {
		rows[i].Title = strings.TrimSpace(rows[i].Title)
		rows[i].Type = strings.TrimSpace(rows[i].Type)
		rows[i].Category = strings.TrimSpace(rows[i].Category)
	}

	return rows, nil
}

// resolveCategories collapses the distinct category titles referenced by the
// rows, creates the missing ones in one batch and returns the full
// title-to-id mapping.
func (s *ImportService) resolveCategories(ctx context.Context, rows []models.ImportRow) (map[string]string, error) {
	seen := make(map[string]bool)
	titles := []string{}
	for _, row := range rows {
		if !seen[row.Category] {
			seen[row.Category] = true
			titles = append(titles, row.Category)
		}
	}

	existing, err := s.categories.FindByTitles(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("find existing categories: %w", err)
	}

	titleToID := make(map[string]string, len(titles))
	for _, category := range existing {
		titleToID[category.Title] = category.ID
	}

	missing := []string{}
	for _, title := range titles {
		if _, ok := titleToID[title]; !ok {
			missing = append(missing, title)
		}
	}

	if len(missing) > 0 {
		created, err := s.categories.CreateMany(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("create categories: %w", err)
		}
		for _, category := range created {
			titleToID[category.Title] = category.ID
		}
		logrus.WithField("count", len(created)).Info("Categories created during import")
	}

	return titleToID, nil
}
