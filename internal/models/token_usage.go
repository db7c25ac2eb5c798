package models

import "time"

// TokenUsage describes a user's position against their monthly budget.
type TokenUsage struct {
	ConsumedTokens int64     `json:"consumed_tokens"`
	TotalLimit     int64     `json:"total_limit"`
	Percentage     float64   `json:"percentage"`
	ResetDate      time.Time `json:"reset_date"`
}

// Blocked reports whether the limit is exhausted. A zero limit means no
// limit is configured, never "everything is blocked".
func (tu *TokenUsage) Blocked() bool {
	return tu.TotalLimit > 0 && tu.ConsumedTokens >= tu.TotalLimit
}
