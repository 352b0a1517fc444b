package create_booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// newManageToken генерирует manage-токен бронирования
// Токен - криптографически стойкий секрет-носитель (bearer capability):
// в логи попадает только префикс
func newManageToken() (string, error) {
	buf := make([]byte, domain.ManageTokenByteSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: failed to generate manage token: %v", ErrInternal, err)
	}
	return hex.EncodeToString(buf), nil
}

// tokenPrefix возвращает безопасный для логирования префикс токена
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
