package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"canvasChat/internal/models"
)

// TokenService meters completion token spend per user per calendar month.
// Keys roll over naturally: the counter key embeds the month, and an expiry
// a little past the month boundary keeps dead counters from piling up.
type TokenService struct {
	redis        *redis.Client
	monthlyLimit int64
	warningRatio float64
}

func NewTokenService(redisClient *redis.Client, monthlyLimit int64, warningRatio float64) *TokenService {
	return &TokenService{
		redis:        redisClient,
		monthlyLimit: monthlyLimit,
		warningRatio: warningRatio,
	}
}

func (ts *TokenService) Usage(ctx context.Context, userID uint) (*models.TokenUsage, error) {
	consumed, err := ts.redis.Get(ctx, tokenKey(userID, time.Now())).Int64()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return ts.usage(consumed), nil
}

func (ts *TokenService) Consume(ctx context.Context, userID uint, tokens int64) (*models.TokenUsage, error) {
	now := time.Now()
	key := tokenKey(userID, now)

	pipe := ts.redis.TxPipeline()
	incr := pipe.IncrBy(ctx, key, tokens)
	pipe.ExpireAt(ctx, key, monthEnd(now).Add(7*24*time.Hour))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return ts.usage(incr.Val()), nil
}

// WarningCrossed reports whether this consumption pushed the user over the
// warning threshold for the first time.
func (ts *TokenService) WarningCrossed(before, after *models.TokenUsage) bool {
	threshold := float64(ts.monthlyLimit) * ts.warningRatio
	return float64(before.ConsumedTokens) < threshold && float64(after.ConsumedTokens) >= threshold
}

func (ts *TokenService) usage(consumed int64) *models.TokenUsage {
	percentage := 0.0
	if ts.monthlyLimit > 0 {
		percentage = float64(consumed) / float64(ts.monthlyLimit) * 100
	}
	return &models.TokenUsage{
		ConsumedTokens: consumed,
		TotalLimit:     ts.monthlyLimit,
		Percentage:     percentage,
		ResetDate:      monthEnd(time.Now()),
	}
}

// The counter key and the advertised reset date must agree on which month
// "now" falls in, so both are computed in UTC.
func tokenKey(userID uint, now time.Time) string {
	return fmt.Sprintf("tokens:%d:%s", userID, now.UTC().Format("2006-01"))
}

func monthEnd(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
