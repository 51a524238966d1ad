package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// TokenPair is the result of every authentication operation: a short-lived
// access token, a refresh token, and the authenticated user.
type TokenPair struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

// AuthServicer defines the contract for authentication business logic.
type AuthServicer interface {
	Register(name, email, password string) (*TokenPair, error)
	Login(email, password string) (*TokenPair, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	ForgotPassword(email string) (bool, error)
	ResetPassword(email, code, password, confirmPassword string) (bool, error)
}

// UserUpdate holds the optional fields of a user update. AvatarURL and
// RemoveAvatar act independently of the other fields so an avatar can be
// set or cleared without touching the name.
type UserUpdate struct {
	Name         *string
	AvatarURL    *string
	RemoveAvatar bool
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	FindUser(id string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	UpdateUser(id string, update UserUpdate) (*models.User, error)
}

// CategoryUpdate holds the optional fields of a category patch; nil fields
// are retained.
type CategoryUpdate struct {
	Title       *string
	Description *string
	Icon        *string
	Color       *models.CategoryColor
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, title, description, icon string, color models.CategoryColor) (*models.Category, error)
	GetCategory(userID, categoryID string) (*models.Category, error)
	ListCategories(userID string) ([]models.Category, error)
	UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing
// transactions. When both the month/year pair and the explicit start/end
// range are present, the explicit range wins.
type TransactionFilter struct {
	Type        *string
	CategoryID  *string
	Description *string
	Month       *int
	Year        *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// TransactionUpdate holds the optional fields of a transaction patch.
type TransactionUpdate struct {
	Description *string
	Amount      *int64
	Type        *string
	Date        *time.Time
	CategoryID  *string
}

// BalanceSummary is the all-time balance plus the current calendar month's
// income and expense totals, in cents.
type BalanceSummary struct {
	Balance      int64 `json:"balance"`
	MonthIncome  int64 `json:"monthIncome"`
	MonthExpense int64 `json:"monthExpense"`
}

// CategorySummaryEntry is one category's aggregate: how many transactions it
// has and their net amount (income added, expense subtracted).
type CategorySummaryEntry struct {
	Category    models.Category `json:"category"`
	Count       int64           `json:"count"`
	TotalAmount int64           `json:"totalAmount"`
}

// TransactionServicer defines the contract for transaction-related business
// logic, including the balance and category aggregations.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID, transactionType string, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) (*models.Transaction, error)
	ListTransactions(userID string, page pagination.Page, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	CountTransactionsByCategory(userID, categoryID string) (int64, error)
	ListTransactionsByCategory(userID, categoryID string) ([]models.Transaction, error)
	GetBalanceSummary(userID string) (*BalanceSummary, error)
	GetCategorySummary(userID string) ([]CategorySummaryEntry, error)
}
