package worker

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ascendhq/concierge-api/internal/logger"
)

// TokenExpirationWorker sweeps consultation requests whose registration token
// passed its expiry without being redeemed, so admins see stale invites in the
// list view instead of silently dead links.
type TokenExpirationWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewTokenExpirationWorker(db *sql.DB) *TokenExpirationWorker {
	return &TokenExpirationWorker{
		db:           db,
		tickInterval: 15 * time.Minute,
	}
}

func (w *TokenExpirationWorker) Start(ctx context.Context) {
	logger.Get().Info("token expiration worker started",
		zap.Duration("tick_interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireStaleTokens(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("token expiration worker stopped")
			return
		case <-ticker.C:
			w.expireStaleTokens(ctx)
		}
	}
}

func (w *TokenExpirationWorker) expireStaleTokens(ctx context.Context) {
	// Only untouched invites are cleared; a redeemed token stays on the
	// record as audit trail.
	query := `
		UPDATE consultation_requests
		SET
			registration_token = NULL,
			updated_at = NOW()
		WHERE
			registration_token IS NOT NULL
			AND token_used = FALSE
			AND token_expires_at < NOW()
		RETURNING id, email, token_expires_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		logger.Get().Error("failed to sweep expired registration tokens", zap.Error(err))
		return
	}
	defer rows.Close()

	expiredCount := 0
	for rows.Next() {
		var id, email string
		var expiresAt time.Time

		if err := rows.Scan(&id, &email, &expiresAt); err != nil {
			logger.Get().Warn("failed to scan expired token row", zap.Error(err))
			continue
		}

		logger.Get().Info("registration token expired unredeemed",
			zap.String("consultation_id", id),
			zap.String("email", email),
			zap.Time("expired_at", expiresAt))
		expiredCount++
	}

	if expiredCount > 0 {
		logger.Get().Info("expired registration tokens cleared",
			zap.Int("count", expiredCount))
	}
}
