package interfaces

import (
	"context"

	"canvasChat/internal/models"
)

// TokenMeter tracks per-user completion token spend against a monthly
// budget. Billing itself is an external concern; this core only asks "how
// much", "add this much", and whether a consumption crossed the warning
// threshold.
type TokenMeter interface {
	Usage(ctx context.Context, userID uint) (*models.TokenUsage, error)
	Consume(ctx context.Context, userID uint, tokens int64) (*models.TokenUsage, error)
	WarningCrossed(before, after *models.TokenUsage) bool
}
