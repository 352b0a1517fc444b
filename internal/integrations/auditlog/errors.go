package auditlog

import "errors"

var (
	// ErrInternal возвращается при ошибках выполнения запроса
	ErrInternal = errors.New("auditlog.client: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса аудита
	ErrInvalidResponse = errors.New("auditlog.client: invalid response")
)
