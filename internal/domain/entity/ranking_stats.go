package entity

// AuthorStats — сырые агрегаты автора, посчитанные в БД.
// Пользователь без викторин присутствует с нулевыми значениями (LEFT JOIN).
type AuthorStats struct {
	UserID        string
	Username      string
	QuizCount     int64
	QuestionVotes int64
	// RatingSum — сумма votes_avg*votes_count по всем вопросам автора
	RatingSum float64
}

// SolverStats — сырые агрегаты решателя по таблице quiz_attempts.
type SolverStats struct {
	UserID         string
	Username       string
	Attempts       int64
	TotalCorrect   int64
	TotalQuestions int64
}
