package handler

import (
	"context"
	"time"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

// Подделки репозиториев: поведение задаётся функциями, незаданные методы отвечают ErrNotFound

type fakeProbe struct{ err error }

func (p fakeProbe) Ping(context.Context) error { return p.err }

type fakeQuestions struct {
	applyRating func(id uint, rating int) (float64, int, error)
}

func (f *fakeQuestions) ApplyRating(_ context.Context, id uint, rating int) (float64, int, error) {
	if f.applyRating == nil {
		return 0, 0, apperrors.ErrNotFound
	}
	return f.applyRating(id, rating)
}

type fakeQuizzes struct {
	quizzes map[uint]*entity.Quiz
	created []*entity.Quiz
	deleted []uint
}

func (f *fakeQuizzes) CreateWithQuestions(_ context.Context, quiz *entity.Quiz) error {
	quiz.ID = uint(len(f.created) + 100)
	quiz.QuestionsCount = len(quiz.Questions)
	f.created = append(f.created, quiz)
	return nil
}

func (f *fakeQuizzes) GetByID(_ context.Context, id uint) (*entity.Quiz, error) {
	if q, ok := f.quizzes[id]; ok {
		return q, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeQuizzes) GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeQuizzes) ListSummaries(context.Context) ([]entity.QuizSummary, error) {
	out := []entity.QuizSummary{}
	for _, q := range f.quizzes {
		out = append(out, entity.QuizSummary{ID: q.ID, Title: q.Title, CreatorID: q.CreatorID})
	}
	return out, nil
}

func (f *fakeQuizzes) ListSummariesByCreator(_ context.Context, creatorID string) ([]entity.QuizSummary, error) {
	out := []entity.QuizSummary{}
	for _, q := range f.quizzes {
		if q.CreatorID == creatorID {
			out = append(out, entity.QuizSummary{ID: q.ID, Title: q.Title, CreatorID: q.CreatorID})
		}
	}
	return out, nil
}

func (f *fakeQuizzes) Delete(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUsers struct {
	users map[string]*entity.User
}

func (f *fakeUsers) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrConflict
		}
	}
	if user.ID == "" {
		user.ID = "generated-id"
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeAttempts struct {
	saved   []entity.QuizAttempt
	history []entity.QuizAttempt
}

func (f *fakeAttempts) Create(_ context.Context, a *entity.QuizAttempt) error {
	a.ID = uint(len(f.saved) + 1)
	f.saved = append(f.saved, *a)
	return nil
}

func (f *fakeAttempts) ListByUser(context.Context, string) ([]entity.QuizAttempt, error) {
	return f.history, nil
}

type fakeVotes struct {
	votes map[string]bool
}

func (f *fakeVotes) Create(_ context.Context, v *entity.UserQuizVote) error {
	key := v.UserID
	if f.votes[key] {
		return apperrors.ErrConflict
	}
	f.votes[key] = true
	return nil
}

func (f *fakeVotes) Get(_ context.Context, userID string, _ uint) (*entity.UserQuizVote, error) {
	if f.votes[userID] {
		return &entity.UserQuizVote{UserID: userID}, nil
	}
	return nil, apperrors.ErrNotFound
}

type fakeRankings struct {
	authors []entity.AuthorStats
	solvers []entity.SolverStats
}

func (f *fakeRankings) AuthorStats(context.Context) ([]entity.AuthorStats, error) {
	return f.authors, nil
}

func (f *fakeRankings) SolverStats(context.Context) ([]entity.SolverStats, error) {
	return f.solvers, nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID, _ string) (string, time.Time, error) {
	return "token-" + userID, time.Unix(1700000000, 0).UTC(), nil
}
