package estimate_price

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// Единственная ошибка usecase: все сбои зависимостей деградируют
	// к fallback-диапазону, а не пробрасываются наружу
	ErrInvalidInput = errors.New("estimate_price: invalid input data")
)
