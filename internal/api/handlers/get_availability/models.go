package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FromDate string            `json:"fromDate"`
	DayCount int               `json:"dayCount"`
	Lane     string            `json:"lane"`
	Days     []DayAvailability `json:"days"`
}

// DayAvailability доступные старты одного дня
type DayAvailability struct {
	Date            string   `json:"date"`
	OpenSlotsCount  int      `json:"openSlotsCount"`
	ValidStartIndex []int    `json:"validStartIndexes"`
	ValidStartTimes []string `json:"validStartTimes"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(fromStr string, dayCount, slotCount int, lane string) (*getAvailability.Request, error) {
	req := &getAvailability.Request{
		DayCount:  dayCount,
		SlotCount: slotCount,
		Lane:      domain.Lane(lane),
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.FromDate = &from
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		startTimes := make([]string, len(day.ValidStartTimes))
		for j, t := range day.ValidStartTimes {
			startTimes[j] = t.String()
		}

		days[i] = DayAvailability{
			Date:            day.Date.Format(domain.DateFormat),
			OpenSlotsCount:  day.OpenSlotsCount,
			ValidStartIndex: day.ValidStartIndex,
			ValidStartTimes: startTimes,
		}
	}

	return &AvailabilityResponse{
		FromDate: resp.FromDate.Format(domain.DateFormat),
		DayCount: resp.DayCount,
		Lane:     string(resp.Lane),
		Days:     days,
	}
}
