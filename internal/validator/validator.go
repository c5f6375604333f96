// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_category", validateTransactionCategory)
		_ = v.RegisterValidation("activity_status", validateActivityStatus)
		_ = v.RegisterValidation("timeframe", validateTimeframe)
	}
}

// Category input is case-insensitive; normalization to lowercase happens in
// the service before the write.
func validateTransactionCategory(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "depense", "revenu":
		return true
	}
	return false
}

func validateActivityStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "upcoming", "ongoing", "finished":
		return true
	}
	return false
}

func validateTimeframe(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "monthly", "yearly":
		return true
	}
	return false
}
