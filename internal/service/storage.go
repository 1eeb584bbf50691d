package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/quizpang-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

// storageGuard ограничивает операцию таймаутом и проверяет доступность базы до начала работы
type storageGuard struct {
	probe   repository.StorageProbe
	timeout time.Duration
}

func newStorageGuard(probe repository.StorageProbe, timeout time.Duration) storageGuard {
	return storageGuard{probe: probe, timeout: timeout}
}

// begin возвращает контекст операции. cancel нужно вызвать всегда, даже при ошибке.
func (g storageGuard) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if g.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
	}
	if g.probe != nil {
		if err := g.probe.Ping(ctx); err != nil {
			return ctx, cancel, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
		}
	}
	return ctx, cancel, nil
}

// RankingInvalidator сбрасывает закешированные рейтинги после записи
type RankingInvalidator interface {
	Invalidate(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

func invalidatorOrNoop(inv RankingInvalidator) RankingInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}
