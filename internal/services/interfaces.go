package services

import (
	"time"

	"github.com/shopspring/decimal"

	"clinfin/internal/models"
	"clinfin/internal/report"
)

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(year, month int) ([]models.Transaction, error)
	GetTransactionByID(id uint) (*models.Transaction, error)
	CreateTransaction(category string, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	UpdateTransaction(id uint, category string, amount decimal.Decimal, description string) (*models.Transaction, error)
	DeleteTransaction(id uint) error
}

// ActivityServicer defines the contract for activity-related business logic.
type ActivityServicer interface {
	ListActivities(status string, year, month int, now time.Time) ([]models.Activity, error)
	GetActivityByID(id uint) (*models.Activity, error)
	CreateActivity(title string, start, end time.Time, description string) (*models.Activity, error)
	UpdateActivity(id uint, title string, start, end time.Time, description string) (*models.Activity, error)
	DeleteActivity(id uint) error
}

// UserServicer defines the contract for user account management.
type UserServicer interface {
	Register(email, password string) (*models.User, error)
	Login(email, password string) (*models.User, error)
	ApproveUser(id uint) (*models.User, error)
	ListUsers() ([]models.User, error)
	ListPendingUsers() ([]models.User, error)
	DeleteUser(id uint) error
}

// AdminServicer defines the contract for administrator account management.
type AdminServicer interface {
	CreateAdmin(email, password string) (*models.Admin, error)
	Login(email, password string) (*models.Admin, error)
	ListAdmins() ([]models.Admin, error)
	DeleteAdmin(id uint) error
}

// ReportingServicer derives reporting views from store snapshots.
type ReportingServicer interface {
	Summary(year, month int) (report.Summary, error)
	DailyBuckets() ([]report.DailyBucket, error)
	TimeframeBuckets(tf report.Timeframe) ([]report.TimeframeBucket, error)
	ExportDaily(period string) (data []byte, contentType string, err error)
	ExportSummary(period string, year, month int) (data []byte, contentType string, err error)
}

// AuditServicer records mutating actions. Implementations must never let a
// logging failure surface to the caller.
type AuditServicer interface {
	Log(actorType string, actorID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
