package get_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validStartIndexes вычисляет допустимые стартовые индексы для непрерывного
// диапазона из slotCount слотов в рамках одного дня
//
// Алгоритм:
//  1. Открытое множество дня - первые openSlotsCount слотов канонической
//     сетки минус занятые индексы
//  2. Кандидат i в [0, openSlotsCount-slotCount]: диапазон валиден, только
//     если КАЖДЫЙ слот [i, i+slotCount) принадлежит открытому множеству
//  3. Результат в порядке возрастания
//
// Занятый слот в середине дня убирает все диапазоны, которые его пересекают,
// а не только начинающиеся на нём - поэтому проверяется весь диапазон.
// slotCount > openSlotsCount даёт пустой список без ошибки
func validStartIndexes(template *domain.DayTemplate, slotCount int) []int {
	result := make([]int, 0, template.OpenSlotsCount)

	if slotCount < domain.MinSlotCount || slotCount > template.OpenSlotsCount {
		return result
	}

	for start := 0; start <= template.OpenSlotsCount-slotCount; start++ {
		if runIsOpen(template, start, slotCount) {
			result = append(result, start)
		}
	}

	return result
}

// runIsOpen проверяет, что весь диапазон [start, start+slotCount) открыт и свободен
func runIsOpen(template *domain.DayTemplate, start, slotCount int) bool {
	for idx := start; idx < start+slotCount; idx++ {
		if idx >= template.OpenSlotsCount {
			return false
		}
		if template.IsBooked(idx) {
			return false
		}
	}
	return true
}
