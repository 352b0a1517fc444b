package estimate_price

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса оценки стоимости
type Request struct {
	BoardCount int // количество досок в заявке, >= 1
	Extras     []domain.SelectedExtra
}

// Response модель ответа с оценкой
type Response struct {
	// Enabled false = оценка административно выключена, диапазона нет
	// (клиенту предлагается ручной расчёт)
	Enabled bool

	// Band оценочный диапазон [Min, Max]; всегда заполнен при Enabled
	Band *domain.PriceBand

	// SampleCount сколько валидных исторических сэмплов легло в оценку
	// (0 = использован fallback от настроенных границ)
	SampleCount int
}
