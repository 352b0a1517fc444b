package overrides

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/overrides/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	override  *domain.DayOverride
	getErr    error
	upsertErr error
	stored    *domain.DayOverride
}

func (f *fakeRepo) GetByDate(_ context.Context, _ time.Time) (*domain.DayOverride, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.override == nil {
		return nil, overrideRepo.ErrOverrideNotFound
	}
	return f.override, nil
}

func (f *fakeRepo) Upsert(_ context.Context, o *domain.DayOverride) (*domain.DayOverride, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	stored := *o
	stored.ID = 1
	stored.UpdatedAt = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	f.stored = &stored
	return &stored, nil
}

type fakeAudit struct {
	events []*auditlog.Event
}

func (f *fakeAudit) RecordAsync(event *auditlog.Event) {
	f.events = append(f.events, event)
}

var testDate = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func TestService_GetByDate(t *testing.T) {
	t.Run("existing override", func(t *testing.T) {
		note := "half day, equipment service"
		repo := &fakeRepo{override: &domain.DayOverride{
			ID:             1,
			Date:           testDate,
			OpenSlotsCount: 1,
			Note:           &note,
		}}
		svc := NewService(repo, &fakeAudit{}, nopLogger{})

		resp, err := svc.GetByDate(context.Background(), testDate)
		require.NoError(t, err)

		assert.Equal(t, "2026-02-10", resp.Date)
		assert.Equal(t, 1, resp.OpenSlotsCount)
		require.NotNil(t, resp.Note)
		assert.Equal(t, note, *resp.Note)
	})

	t.Run("missing override", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, &fakeAudit{}, nopLogger{})

		_, err := svc.GetByDate(context.Background(), testDate)
		assert.ErrorIs(t, err, ErrOverrideNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeRepo{getErr: errors.New("db down")}
		svc := NewService(repo, &fakeAudit{}, nopLogger{})

		_, err := svc.GetByDate(context.Background(), testDate)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Upsert(t *testing.T) {
	t.Run("valid override is stored and audited", func(t *testing.T) {
		repo := &fakeRepo{}
		audit := &fakeAudit{}
		svc := NewService(repo, audit, nopLogger{})

		resp, err := svc.Upsert(context.Background(), testDate, &models.UpsertOverrideRequest{OpenSlotsCount: 2})
		require.NoError(t, err)

		assert.Equal(t, "2026-02-10", resp.Date)
		assert.Equal(t, 2, resp.OpenSlotsCount)
		require.NotNil(t, repo.stored)

		require.Len(t, audit.events, 1)
		assert.Equal(t, "day_override_set", audit.events[0].Action)
		assert.Equal(t, "openSlots=2", audit.events[0].Details)
	})

	t.Run("zero closes the day", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, &fakeAudit{}, nopLogger{})

		resp, err := svc.Upsert(context.Background(), testDate, &models.UpsertOverrideRequest{OpenSlotsCount: 0})
		require.NoError(t, err)
		assert.Zero(t, resp.OpenSlotsCount)
	})

	t.Run("count above the slot grid is rejected", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, &fakeAudit{}, nopLogger{})

		_, err := svc.Upsert(context.Background(), testDate, &models.UpsertOverrideRequest{
			OpenSlotsCount: domain.TotalSlotTimes() + 1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeRepo{upsertErr: errors.New("db down")}
		svc := NewService(repo, &fakeAudit{}, nopLogger{})

		_, err := svc.Upsert(context.Background(), testDate, &models.UpsertOverrideRequest{OpenSlotsCount: 1})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
