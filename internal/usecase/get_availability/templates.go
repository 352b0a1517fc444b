package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// generateDayTemplates строит dayCount последовательных шаблонов дней начиная с from
// Шаблоны идут подряд, без пропусков. Количество открытых слотов берётся из
// переопределения на точную дату, иначе из таблицы по дню недели.
//
// Детерминированность: для фиксированных (from, dayCount, overrides) результат
// идентичен при каждом вызове - никакой скрытой случайности
func generateDayTemplates(
	from time.Time,
	dayCount int,
	overrides map[string]*domain.DayOverride,
) []domain.DayTemplate {
	templates := make([]domain.DayTemplate, 0, dayCount)

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	for i := 0; i < dayCount; i++ {
		date := day.AddDate(0, 0, i)
		dateKey := date.Format(domain.DateFormat)

		templates = append(templates, domain.DayTemplate{
			Date:           date,
			OpenSlotsCount: domain.OpenSlotsForDate(date, overrides[dateKey]),
			BookedSlots:    make(map[int]struct{}),
		})
	}

	return templates
}

// seedDemoBookings помечает занятые слоты по детерминированному паттерну
// Используется только в демо/симуляции, когда живых данных нет: standard
// блокирует дневной слот каждый третий день месяца, acute - утренний слот
// по чётным дням. В production живые бронирования заменяют этот паттерн
func seedDemoBookings(templates []domain.DayTemplate, lane domain.Lane) {
	for i := range templates {
		day := templates[i].Date.Day()

		switch lane {
		case domain.LaneAcute:
			if day%2 == 0 {
				templates[i].BookedSlots[0] = struct{}{}
			}
		default:
			if day%3 == 0 {
				templates[i].BookedSlots[1] = struct{}{}
			}
		}
	}
}

// applyBookings помечает в шаблонах слоты, занятые активными бронированиями
func applyBookings(templates []domain.DayTemplate, bookings []*domain.Booking) {
	byDate := make(map[string][]*domain.Booking, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		key := b.BookingDate.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], b)
	}

	for i := range templates {
		key := templates[i].Date.Format(domain.DateFormat)
		for _, b := range byDate[key] {
			for idx := b.StartSlotIndex; idx < b.StartSlotIndex+b.SlotCount; idx++ {
				templates[i].BookedSlots[idx] = struct{}{}
			}
		}
	}
}
