package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clinfin/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an approved user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, true)
}

// CreateTestUserWithEmail creates a user with the given email and approval state.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, approved bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:      email,
		Password:   string(hash),
		IsApproved: approved,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates an admin with a hashed password and unique email.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.Admin {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return CreateTestAdminWithEmail(t, db, email)
}

// CreateTestAdminWithEmail creates an admin with the given email.
func CreateTestAdminWithEmail(t *testing.T, db *gorm.DB, email string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.Admin{
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}

// CreateTestTransaction creates a transaction of the given category and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, category models.TransactionCategory, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Category:    category,
		Amount:      amount,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestActivity creates an activity over the given period.
func CreateTestActivity(t *testing.T, db *gorm.DB, start, end time.Time) *models.Activity {
	t.Helper()

	activity := &models.Activity{
		Title: fmt.Sprintf("Test activity %d", nextID()),
		Start: start,
		End:   end,
	}
	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("failed to create test activity: %v", err)
	}
	return activity
}
