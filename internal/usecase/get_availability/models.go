package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных стартов
type Request struct {
	FromDate  *time.Time  // начало окна, nil = сегодня
	DayCount  int         // количество дней, 0 = дефолт для линии
	SlotCount int         // длина непрерывного диапазона слотов
	Lane      domain.Lane // линия бронирования (standard / acute)
}

// Response модель ответа: по одному элементу на каждый день окна
type Response struct {
	FromDate time.Time
	DayCount int
	Lane     domain.Lane
	Days     []DayAvailability
}

// DayAvailability доступные старты одного дня
type DayAvailability struct {
	Date            time.Time
	OpenSlotsCount  int
	ValidStartIndex []int              // допустимые стартовые индексы, по возрастанию
	ValidStartTimes []types.TimeString // те же старты как времена HH:MM
}
