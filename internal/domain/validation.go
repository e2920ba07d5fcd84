package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MinPasswordLength is the sign-up password requirement.
const MinPasswordLength = 6

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateAmount checks that an amount is strictly positive.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	return nil
}

// ValidateOpeningBalance checks that a new account's balance is not negative.
func ValidateOpeningBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative", ErrValidation)
	}
	return nil
}

// ValidatePassword checks password requirements for sign-up.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	return nil
}
