package utils

import (
	"os"

	"github.com/shopspring/decimal"
)

// IsProduction controls whether monetary amounts are masked in logs.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production" ||
	os.Getenv("ENV") == "production"

// SafeAmount renders a monetary value for logging. In production the exact
// amount is masked.
func SafeAmount(value decimal.Decimal) string {
	if IsProduction {
		return "***"
	}
	return value.StringFixed(2)
}
