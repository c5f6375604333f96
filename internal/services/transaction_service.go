package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/models"
	"clinfin/internal/report"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// ListTransactions retrieves all transactions, newest first, optionally
// restricted to a (year, month). month == 0 means the whole year, year == 0
// disables the filter.
func (s *transactionService) ListTransactions(year, month int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return report.TransactionsInMonth(transactions, year, month), nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// CreateTransaction creates a new transaction. The category is normalized
// to lowercase and must be one of the two accepted values; a zero amount is
// rejected. The date defaults to the current time when not supplied.
func (s *transactionService) CreateTransaction(category string, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error) {
	normalized, ok := models.NormalizeCategory(category)
	if !ok {
		return nil, apperrors.ErrInvalidCategory
	}
	if amount.IsZero() {
		return nil, apperrors.ErrZeroAmount
	}
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		Category:    normalized,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// UpdateTransaction replaces the category, amount and description of an
// existing transaction. The original timestamp is preserved.
func (s *transactionService) UpdateTransaction(id uint, category string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	normalized, ok := models.NormalizeCategory(category)
	if !ok {
		return nil, apperrors.ErrInvalidCategory
	}
	if amount.IsZero() {
		return nil, apperrors.ErrZeroAmount
	}

	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	transaction.Category = normalized
	transaction.Amount = amount
	transaction.Description = description
	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction deletes a transaction by ID.
func (s *transactionService) DeleteTransaction(id uint) error {
	result := s.db.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
