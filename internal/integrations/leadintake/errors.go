package leadintake

import "errors"

var (
	// ErrInternal возвращается при ошибках выполнения запроса
	ErrInternal = errors.New("leadintake.client: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса
	ErrInvalidResponse = errors.New("leadintake.client: invalid response")

	// ErrServiceDegraded возвращается при недоступности сервиса приёма заявок
	ErrServiceDegraded = errors.New("leadintake.client: service degraded")
)
