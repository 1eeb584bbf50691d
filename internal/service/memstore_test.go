package service

import (
	"context"
	"sort"
	"sync"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
)

// memStore — хранилище в памяти для сценарных тестов.
// Каждая операция выполняется под одной блокировкой, как одна инструкция SQL.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	quizzes   map[uint]*entity.Quiz
	questions map[uint]*entity.Question
	attempts  []entity.QuizAttempt
	votes     map[string]entity.UserQuizVote
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]*entity.User),
		quizzes:   make(map[uint]*entity.Quiz),
		questions: make(map[uint]*entity.Question),
		votes:     make(map[string]entity.UserQuizVote),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

// Ping: хранилище в памяти всегда доступно
func (s *memStore) Ping(context.Context) error { return nil }

// --- users ---

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return apperrors.ErrConflict
		}
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// --- quizzes ---

type memQuizzes struct{ *memStore }

func (r memQuizzes) CreateWithQuestions(_ context.Context, quiz *entity.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[quiz.CreatorID]; !ok {
		return apperrors.ErrConflict
	}
	quiz.ID = r.id()
	quiz.QuestionsCount = len(quiz.Questions)
	stored := *quiz
	stored.Questions = nil
	r.quizzes[quiz.ID] = &stored
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		q.ID = r.id()
		q.QuizID = quiz.ID
		cp := *q
		r.questions[q.ID] = &cp
	}
	return nil
}

func (r memQuizzes) GetByID(_ context.Context, id uint) (*entity.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quizzes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r memQuizzes) questionsOf(quizID uint) []entity.Question {
	var out []entity.Question
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memQuizzes) GetWithQuestions(_ context.Context, id uint) (*entity.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quizzes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *q
	cp.Questions = r.questionsOf(id)
	return &cp, nil
}

func (r memQuizzes) summaries(filter func(*entity.Quiz) bool) []entity.QuizSummary {
	out := []entity.QuizSummary{}
	for _, z := range r.quizzes {
		if !filter(z) {
			continue
		}
		var votes []ranking.QuestionVotes
		for _, q := range r.questionsOf(z.ID) {
			votes = append(votes, ranking.QuestionVotes{Avg: q.VotesAvg, Count: q.VotesCount})
		}
		rollup := ranking.QuizRollup(votes)
		out = append(out, entity.QuizSummary{
			ID:             z.ID,
			Title:          z.Title,
			Category:       z.Category,
			CreatorID:      z.CreatorID,
			QuestionsCount: rollup.QuestionsCount,
			VotesCount:     rollup.VotesCount,
			VotesAvg:       rollup.VotesAvg,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memQuizzes) ListSummaries(context.Context) ([]entity.QuizSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summaries(func(*entity.Quiz) bool { return true }), nil
}

func (r memQuizzes) ListSummariesByCreator(_ context.Context, creatorID string) ([]entity.QuizSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summaries(func(z *entity.Quiz) bool { return z.CreatorID == creatorID }), nil
}

// Delete каскадно удаляет вопросы, попытки и голоса, как ON DELETE CASCADE
func (r memQuizzes) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.quizzes, id)
	for qid, q := range r.questions {
		if q.QuizID == id {
			delete(r.questions, qid)
		}
	}
	kept := r.attempts[:0]
	for _, a := range r.attempts {
		if a.QuizID != id {
			kept = append(kept, a)
		}
	}
	r.attempts = kept
	for k, v := range r.votes {
		if v.QuizID == id {
			delete(r.votes, k)
		}
	}
	return nil
}

// --- questions ---

type memQuestions struct{ *memStore }

func (r memQuestions) ApplyRating(_ context.Context, id uint, rating int) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return 0, 0, apperrors.ErrNotFound
	}
	q.VotesAvg, q.VotesCount = ranking.FoldRating(q.VotesAvg, q.VotesCount, rating)
	return q.VotesAvg, q.VotesCount, nil
}

// --- attempts ---

type memAttempts struct{ *memStore }

func (r memAttempts) Create(_ context.Context, a *entity.QuizAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[a.UserID]; !ok {
		return apperrors.ErrConflict
	}
	if _, ok := r.quizzes[a.QuizID]; !ok {
		return apperrors.ErrConflict
	}
	a.ID = r.id()
	r.attempts = append(r.attempts, *a)
	return nil
}

func (r memAttempts) ListByUser(_ context.Context, userID string) ([]entity.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.QuizAttempt{}
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// --- rankings ---

type memRankings struct{ *memStore }

func (r memRankings) AuthorStats(context.Context) ([]entity.AuthorStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := make([]entity.AuthorStats, 0, len(r.users))
	for _, u := range r.users {
		st := entity.AuthorStats{UserID: u.ID, Username: u.Username}
		for _, z := range r.quizzes {
			if z.CreatorID != u.ID {
				continue
			}
			st.QuizCount++
			for _, q := range r.questions {
				if q.QuizID == z.ID {
					st.QuestionVotes += int64(q.VotesCount)
					st.RatingSum += q.RatingSum()
				}
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func (r memRankings) SolverStats(context.Context) ([]entity.SolverStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := make([]entity.SolverStats, 0, len(r.users))
	for _, u := range r.users {
		st := entity.SolverStats{UserID: u.ID, Username: u.Username}
		for _, a := range r.attempts {
			if a.UserID == u.ID {
				st.Attempts++
				st.TotalCorrect += int64(a.Score)
				st.TotalQuestions += int64(a.TotalQuestions)
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}
