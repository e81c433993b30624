package commerce

import (
	"errors"
	"fmt"
)

var (
	// ErrAPI — ответ не 2xx или сбой транспорта при обращении к API магазина.
	ErrAPI = errors.New("commerce api error")
	// ErrInvalidBaseURL — base URL аккаунта не годится для запросов (ошибка конфигурации).
	ErrInvalidBaseURL = errors.New("invalid store base url")
)

// maxErrorBody — сколько байт тела ответа сохранять в ошибке.
const maxErrorBody = 512

// APIError — ответ API с кодом вне 2xx.
type APIError struct {
	Resource   string
	Page       int
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s page %d: status %d: %s", e.Resource, e.Page, e.StatusCode, e.Body)
}

// Unwrap — errors.Is(err, ErrAPI).
func (e *APIError) Unwrap() error { return ErrAPI }
