package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверный пароль).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных
	// (рейтинг вне диапазона, пропущенное поле, некорректный payload).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для нарушений ограничений хранилища:
	// дубликат email/username, повторный голос, ссылка на несуществующего автора или викторину.
	ErrConflict = errors.New("constraint violation")

	// ErrStorageUnavailable означает, что база данных недоступна в момент вызова.
	// Никогда не должна превращаться во внутреннюю ошибку.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
