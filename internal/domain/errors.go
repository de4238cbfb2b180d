package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400: нет обязательного поля, пустой patch
	ErrUnauth           = errors.New("unauthorized")       // 401: нет валидной identity
	ErrForbidden        = errors.New("forbidden")          // 403: запись чужая либо попытка сменить владельца
	ErrNotFound         = errors.New("not_found")          // 404: записи не существует
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnexpected       = errors.New("unexpected")         // 500: ошибка хранилища и прочее неожиданное
)

// Коды для конверта ответа
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeForbidden        = 1003
	ErrCodeNotFound         = 1004
	ErrCodeMethodNotAllowed = 1005
	ErrCodeUnexpected       = 1500
)
