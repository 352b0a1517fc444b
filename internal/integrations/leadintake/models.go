package leadintake

// RescheduleLead структурированная заявка на перенос бронирования
// Перенос обрабатывается оператором вручную, не автоматическим пере-слотированием
type RescheduleLead struct {
	BookingID     int64  `json:"bookingId"`
	BookingDate   string `json:"bookingDate"` // YYYY-MM-DD
	StartTime     string `json:"startTime"`   // HH:MM
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Note          string `json:"note"`
}
