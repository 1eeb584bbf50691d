package ranking

// DefaultTopN — сколько строк возвращает рейтинг
const DefaultTopN = 100

// Config содержит настройки ранжирования
type Config struct {
	// TopN — максимальное количество строк в рейтинге
	TopN int

	// QuizBonus — очки автора за каждую созданную викторину
	QuizBonus float64
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		TopN:      DefaultTopN,
		QuizBonus: 0,
	}
}

// normalized подставляет значения по умолчанию вместо некорректных
func (c Config) normalized() Config {
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if c.QuizBonus < 0 {
		c.QuizBonus = 0
	}
	return c
}
