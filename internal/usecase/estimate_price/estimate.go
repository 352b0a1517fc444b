package estimate_price

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// filterValidSamples отбрасывает сэмплы с инвертированной или
// неположительной парой
func filterValidSamples(samples []domain.PriceSample) []domain.PriceSample {
	valid := make([]domain.PriceSample, 0, len(samples))
	for _, s := range samples {
		if s.IsValid() {
			valid = append(valid, s)
		}
	}
	return valid
}

// meanMidpoint среднее арифметическое середин принятых диапазонов
func meanMidpoint(samples []domain.PriceSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s.Midpoint()
	}
	return sum / float64(len(samples))
}

// bandAround строит диапазон ширины interval с центром center,
// зажатый в [minPrice, maxPrice]
//
// Если зажатие сузило диапазон меньше interval, диапазон до-расширяется
// от границы, у которой остался запас. Если весь коридор настроек уже
// interval, возвращается весь коридор
func bandAround(center, interval, minPrice, maxPrice float64) domain.PriceBand {
	half := interval / 2

	lo := center - half
	hi := center + half

	if lo < minPrice {
		lo = minPrice
	}
	if hi > maxPrice {
		hi = maxPrice
	}

	if hi-lo < interval {
		if lo <= minPrice {
			hi = lo + interval
			if hi > maxPrice {
				hi = maxPrice
			}
		} else if hi >= maxPrice {
			lo = hi - interval
			if lo < minPrice {
				lo = minPrice
			}
		}
	}

	return domain.PriceBand{Min: lo, Max: hi}
}

// scaleAndAddExtras масштабирует диапазон на количество досок и добавляет
// выбранные доп. услуги к обеим границам
//
// Неизвестные коды и неположительные счётчики молча пропускаются:
// оценка консультативная и не должна падать из-за мусора в запросе
func scaleAndAddExtras(
	band domain.PriceBand,
	boardCount int,
	extras []domain.SelectedExtra,
	catalog map[string]domain.ExtraItem,
) domain.PriceBand {
	result := domain.PriceBand{
		Min: band.Min * float64(boardCount),
		Max: band.Max * float64(boardCount),
	}

	for _, selected := range extras {
		item, ok := catalog[selected.Code]
		if !ok {
			continue
		}

		factor := 1
		if item.PerBoard {
			if selected.Count <= 0 {
				continue
			}
			factor = selected.Count
		}

		result.Min += item.PriceMin * float64(factor)
		result.Max += item.PriceMax * float64(factor)
	}

	// Инвертированный диапазон наружу не выходит
	if result.Max < result.Min {
		result.Max = result.Min
	}

	return result
}
