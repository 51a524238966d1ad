package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles transaction-related business logic, including
// the balance and per-category aggregations.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// CreateTransaction inserts a new transaction for the caller. The category
// must belong to the caller, the amount is a positive magnitude, and the
// type tag is normalized case-insensitively. A zero date defaults to now.
func (s *transactionService) CreateTransaction(userID, categoryID, transactionType string, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	txType, ok := models.ParseTransactionType(transactionType)
	if !ok {
		return nil, apperrors.ErrInvalidTransactionType
	}

	if date.IsZero() {
		date = time.Now()
	}

	// Verify the referenced category exists and belongs to the caller.
	if _, err := s.categoryService.GetCategory(userID, categoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Description: description,
		Amount:      amount,
		Type:        txType,
		Date:        date,
		CategoryID:  categoryID,
		UserID:      userID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID, enforcing the ownership
// guard: absent is TRANSACTION_NOT_FOUND, foreign-owned is NOT_OWNER.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transaction.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update to an owned transaction.
// A changed category is re-verified against the caller, and the mutation is
// a single owner-scoped statement inside a transaction so a concurrent
// mutation cannot slip between the guard and the write.
func (s *transactionService) UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	if _, err := s.GetTransactionByID(userID, transactionID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		if *update.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *update.Amount
	}
	if update.Type != nil {
		txType, ok := models.ParseTransactionType(*update.Type)
		if !ok {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["type"] = txType
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.CategoryID != nil {
		if _, err := s.categoryService.GetCategory(userID, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}

	if len(updates) > 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&models.Transaction{}).
				Where("id = ? AND user_id = ?", transactionID, userID).
				Updates(updates).Error
		})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction physically deletes an owned transaction and returns the
// deleted row.
func (s *transactionService) DeleteTransaction(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ? AND user_id = ?", transactionID, userID).
			Delete(&models.Transaction{}).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// ListTransactions retrieves a filtered page of the caller's transactions,
// newest date first, plus the total count of rows matching the same
// predicate regardless of limit/offset.
func (s *transactionService) ListTransactions(userID string, page pagination.Page, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base, err := applyTransactionFilters(base, filter)
	if err != nil {
		return nil, err
	}

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, totalCount)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) (*gorm.DB, error) {
	if f.Type != nil && *f.Type != "" {
		txType, ok := models.ParseTransactionType(*f.Type)
		if !ok {
			return nil, apperrors.ErrInvalidTransactionType
		}
		q = q.Where("type = ?", txType)
	}
	// The special value "all" means no category filter.
	if f.CategoryID != nil && *f.CategoryID != "" && *f.CategoryID != "all" {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Description != nil && *f.Description != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(*f.Description)+"%")
	}

	// An explicit start/end range wins over the month/year pair because it
	// is applied last.
	if f.StartDate != nil && f.EndDate != nil {
		q = q.Where("date >= ? AND date <= ?", *f.StartDate, *f.EndDate)
	} else if f.Month != nil && f.Year != nil {
		start := time.Date(*f.Year, time.Month(*f.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	return q, nil
}

// CountTransactionsByCategory counts the caller's transactions in a category.
func (s *transactionService) CountTransactionsByCategory(userID, categoryID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// ListTransactionsByCategory returns the caller's transactions in a category.
func (s *transactionService) ListTransactionsByCategory(userID, categoryID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Order("date DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetBalanceSummary computes the all-time balance (income minus expense)
// and the income/expense totals within the current calendar month. Sums
// with no matching rows are zero.
func (s *transactionService) GetBalanceSummary(userID string) (*BalanceSummary, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	totalIncome, err := s.sumAmount(userID, models.TransactionTypeIncome, nil, nil)
	if err != nil {
		return nil, err
	}
	totalExpense, err := s.sumAmount(userID, models.TransactionTypeExpense, nil, nil)
	if err != nil {
		return nil, err
	}
	monthIncome, err := s.sumAmount(userID, models.TransactionTypeIncome, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}
	monthExpense, err := s.sumAmount(userID, models.TransactionTypeExpense, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}

	return &BalanceSummary{
		Balance:      totalIncome - totalExpense,
		MonthIncome:  monthIncome,
		MonthExpense: monthExpense,
	}, nil
}

// sumAmount sums the caller's transaction amounts of one type, optionally
// restricted to the half-open date range [from, to).
func (s *transactionService) sumAmount(userID string, txType models.TransactionType, from, to *time.Time) (int64, error) {
	q := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date < ?", *to)
	}

	var total int64
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// categoryAggRow is one (category, type) group produced by the summary query.
type categoryAggRow struct {
	CategoryID string
	Type       models.TransactionType
	Count      int64
	Total      int64
}

// GetCategorySummary groups the caller's transactions by (category, type)
// and folds the two type groups per category into one net figure: income
// added, expense subtracted. Categories with no transactions are absent;
// groups whose category cannot be resolved are skipped.
func (s *transactionService) GetCategorySummary(userID string) ([]CategorySummaryEntry, error) {
	var rows []categoryAggRow
	err := s.db.Model(&models.Transaction{}).
		Select("category_id, type, COUNT(id) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("category_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(rows) == 0 {
		return []CategorySummaryEntry{}, nil
	}

	ids := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !seen[row.CategoryID] {
			seen[row.CategoryID] = true
			ids = append(ids, row.CategoryID)
		}
	}

	var categories []models.Category
	if err := s.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	entries := make(map[string]*CategorySummaryEntry, len(ids))
	order := make([]string, 0, len(ids))
	for _, row := range rows {
		category, ok := byID[row.CategoryID]
		if !ok {
			continue
		}

		entry, exists := entries[row.CategoryID]
		if !exists {
			entry = &CategorySummaryEntry{Category: category}
			entries[row.CategoryID] = entry
			order = append(order, row.CategoryID)
		}

		entry.Count += row.Count
		if row.Type == models.TransactionTypeIncome {
			entry.TotalAmount += row.Total
		} else {
			entry.TotalAmount -= row.Total
		}
	}

	result := make([]CategorySummaryEntry, 0, len(order))
	for _, id := range order {
		result = append(result, *entries[id])
	}
	return result, nil
}
