package auditlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event одно событие аудита
type Event struct {
	Action    string `json:"action"` // booking_created, booking_cancelled, reschedule_requested
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD
	Details   string `json:"details,omitempty"`
}

// Client клиент сервиса аудит-логирования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента аудита
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Record отправляет событие аудита
func (c *Client) Record(ctx context.Context, event *Event) error {
	url := fmt.Sprintf("%s/internal/audit/events", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// RecordAsync отправляет событие аудита в фоне (fire-and-forget)
// Ошибка аудита никогда не влияет на результат операции: только лог
func (c *Client) RecordAsync(event *Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Record(ctx, event); err != nil {
			c.log.Error("Audit event delivery failed: action=%s booking_id=%d: %v",
				event.Action, event.BookingID, err)
		}
	}()
}
