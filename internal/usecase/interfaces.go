package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
	"github.com/ascendhq/concierge-api/internal/infra/token"
	"github.com/ascendhq/concierge-api/internal/logger"
)

type TokenServiceInterface interface {
	NewRegistrationToken(consultationID, email string) (string, time.Time, error)
	ParseRegistrationToken(raw string) (*token.RegistrationClaims, error)
	NewSessionToken(u *entity.User) (string, error)
}

// dispatch publishes a detached side-effect job and reports whether it went
// out. Failures are logged, never propagated: the primary state change has
// already been committed and stays committed.
func dispatch(ctx context.Context, d queue.DispatcherInterface, job queue.NotificationJob) bool {
	if d == nil {
		return false
	}
	if err := d.Dispatch(ctx, job); err != nil {
		logger.Get().Warn("side-effect dispatch failed", zap.Error(err))
		return false
	}
	return true
}

func logWarn(msg string, err error) {
	logger.Get().Warn(msg, zap.Error(err))
}
