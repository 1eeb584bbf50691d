package helper

import (
	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// OptionsOrEmpty возвращает варианты ответа; у вопросов без вариантов пустой массив вместо null
func OptionsOrEmpty(options entity.StringArray) []string {
	if options == nil {
		return []string{}
	}
	return []string(options)
}

// FirstNonEmpty возвращает первую непустую строку
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
