package ranking

// QuestionVotes — агрегат оценок одного вопроса
type QuestionVotes struct {
	Avg   float64
	Count int
}

// Rollup — живые агрегаты викторины
type Rollup struct {
	QuestionsCount int
	VotesCount     int64
	VotesAvg       float64
}

// QuizRollup считает средний рейтинг викторины, взвешенный по количеству голосов.
// Без голосов средний рейтинг равен 0.
func QuizRollup(questions []QuestionVotes) Rollup {
	var sum float64
	var votes int64
	for _, q := range questions {
		if q.Count <= 0 {
			continue
		}
		sum += q.Avg * float64(q.Count)
		votes += int64(q.Count)
	}
	return Rollup{
		QuestionsCount: len(questions),
		VotesCount:     votes,
		VotesAvg:       WeightedAverage(sum, votes),
	}
}

// WeightedAverage делит сумму оценок на количество голосов, 0 при отсутствии голосов
func WeightedAverage(ratingSum float64, votes int64) float64 {
	if votes <= 0 {
		return 0
	}
	return ratingSum / float64(votes)
}

// AuthorPoints — очки автора: сумма всех полученных звёзд плюс бонус за викторины.
// Каждый голос добавляет не меньше одной звезды, поэтому очки растут
// и с числом голосов, и со средней оценкой.
func AuthorPoints(ratingSum float64, quizCount int64, quizBonus float64) float64 {
	if ratingSum < 0 {
		ratingSum = 0
	}
	return ratingSum + quizBonus*float64(quizCount)
}

// Accuracy — доля правильных ответов, 0 если вопросов не было
func Accuracy(totalCorrect, totalQuestions int64) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	return float64(totalCorrect) / float64(totalQuestions)
}
