package models

import "github.com/shopspring/decimal"

// Balance is derived from the full transaction set on demand and is never
// persisted. Total is always Income - Outcome.
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Outcome decimal.Decimal `json:"outcome"`
	Total   decimal.Decimal `json:"total"`
}
