package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
	"github.com/yourusername/quizpang-api/pkg/metrics"
)

// Кеш рейтингов версионируется поколением: Invalidate увеличивает счетчик,
// и снимок, посчитанный до записи, остается под старым ключом до истечения TTL.
const rankingGenerationKey = "ranking:gen"

func rankingCacheKey(kind ranking.Kind, gen int64) string {
	return fmt.Sprintf("ranking:%s:%d", kind, gen)
}

// RankingService строит рейтинги авторов и решателей
type RankingService struct {
	rankingRepo repository.RankingRepository
	cacheRepo   repository.CacheRepository
	guard       storageGuard
	cfg         ranking.Config
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewRankingService создает сервис рейтингов. cacheRepo может быть nil.
func NewRankingService(
	rankingRepo repository.RankingRepository,
	cacheRepo repository.CacheRepository,
	probe repository.StorageProbe,
	m *metrics.Metrics,
	opts Options,
	logger *zap.Logger,
) *RankingService {
	return &RankingService{
		rankingRepo: rankingRepo,
		cacheRepo:   cacheRepo,
		guard:       newStorageGuard(probe, opts.QueryTimeout),
		cfg:         opts.Ranking,
		cacheTTL:    opts.RankingCacheTTL,
		metrics:     m,
		logger:      logger.Named("RankingService"),
	}
}

func (s *RankingService) cacheEnabled() bool {
	return s.cacheRepo != nil && s.cacheTTL > 0
}

// GetRanking возвращает до TopN строк рейтинга выбранного вида
func (s *RankingService) GetRanking(ctx context.Context, kind ranking.Kind) (*ranking.Result, error) {
	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	// Поколение читается до запроса к базе
	gen, cacheable := s.generation(ctx)
	if cacheable {
		if cached, ok := s.fromCache(ctx, kind, gen); ok {
			return cached, nil
		}
	}

	result := &ranking.Result{Kind: kind}
	switch kind {
	case ranking.KindAuthor:
		stats, err := s.rankingRepo.AuthorStats(ctx)
		if err != nil {
			return nil, fmt.Errorf("author ranking: %w", err)
		}
		result.Authors = ranking.RankAuthors(stats, s.cfg)
	case ranking.KindSolver:
		stats, err := s.rankingRepo.SolverStats(ctx)
		if err != nil {
			return nil, fmt.Errorf("solver ranking: %w", err)
		}
		result.Solvers = ranking.RankSolvers(stats, s.cfg)
	default:
		return nil, fmt.Errorf("%w: unknown ranking kind %s", apperrors.ErrValidation, kind)
	}

	if cacheable {
		s.toCache(ctx, kind, gen, result)
	}
	return result, nil
}

// generation возвращает текущее поколение кеша; false, если кеш выключен или недоступен
func (s *RankingService) generation(ctx context.Context) (int64, bool) {
	if !s.cacheEnabled() {
		return 0, false
	}
	gen, err := s.cacheRepo.GetInt(ctx, rankingGenerationKey)
	if err != nil {
		s.logger.Warn("Не удалось прочитать поколение кеша рейтингов", zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (s *RankingService) fromCache(ctx context.Context, kind ranking.Kind, gen int64) (*ranking.Result, bool) {
	var cached ranking.Result
	err := s.cacheRepo.GetJSON(ctx, rankingCacheKey(kind, gen), &cached)
	switch {
	case err == nil:
		cached.Kind = kind
		s.countCache(kind, "hit")
		return &cached, true
	case errors.Is(err, apperrors.ErrNotFound):
		s.countCache(kind, "miss")
	default:
		// Кеш недоступен: считаем рейтинг из базы
		s.countCache(kind, "error")
		s.logger.Warn("Не удалось прочитать кеш рейтинга", zap.Stringer("kind", kind), zap.Error(err))
	}
	return nil, false
}

func (s *RankingService) toCache(ctx context.Context, kind ranking.Kind, gen int64, result *ranking.Result) {
	if err := s.cacheRepo.SetJSON(ctx, rankingCacheKey(kind, gen), result, s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось сохранить рейтинг в кеш", zap.Stringer("kind", kind), zap.Error(err))
	}
}

func (s *RankingService) countCache(kind ranking.Kind, result string) {
	if s.metrics != nil {
		s.metrics.RankingCache.WithLabelValues(kind.String(), result).Inc()
	}
}

// Invalidate переводит кеш рейтингов на новое поколение. Вызывается после коммита записи.
func (s *RankingService) Invalidate(ctx context.Context) {
	if s.cacheRepo == nil {
		return
	}
	if _, err := s.cacheRepo.Increment(ctx, rankingGenerationKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш рейтингов", zap.Error(err))
	}
}
