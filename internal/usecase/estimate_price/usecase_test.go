package estimate_price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeSampleRepo struct {
	samples  []domain.PriceSample
	err      error
	gotLimit int
}

func (f *fakeSampleRepo) GetRecent(_ context.Context, limit int) ([]domain.PriceSample, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.samples, nil
}

type fakeSettingsRepo struct {
	settings *domain.EstimatorSettings
	err      error
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.EstimatorSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

func testCatalog() []domain.ExtraItem {
	return []domain.ExtraItem{
		{Code: "binding_check", Name: "Binding check", PriceMin: 15, PriceMax: 30, PerBoard: true},
		{Code: "edge_repair", Name: "Edge repair", PriceMin: 40, PriceMax: 120, PerBoard: true},
		{Code: "hot_wax", Name: "Hot wax", PriceMin: 25, PriceMax: 45, PerBoard: true},
	}
}

func enabledSettings() *domain.EstimatorSettings {
	return &domain.EstimatorSettings{
		Enabled:    true,
		MinSamples: 3,
		Interval:   40,
		MinPrice:   80,
		MaxPrice:   600,
	}
}

func sampleSet(midpoints ...float64) []domain.PriceSample {
	out := make([]domain.PriceSample, 0, len(midpoints))
	for _, m := range midpoints {
		out = append(out, domain.PriceSample{
			PriceMin:    m - 10,
			PriceMax:    m + 10,
			FinalizedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestUseCase_Execute_InvalidBoardCount(t *testing.T) {
	uc := NewUseCase(&fakeSampleRepo{}, &fakeSettingsRepo{settings: enabledSettings()}, testCatalog(), nopLogger{})

	for _, count := range []int{0, -1, domain.MaxBoardCount + 1} {
		_, err := uc.Execute(context.Background(), &Request{BoardCount: count})
		assert.ErrorIs(t, err, ErrInvalidInput, "boardCount=%d", count)
	}
}

func TestUseCase_Execute_Disabled(t *testing.T) {
	settings := enabledSettings()
	settings.Enabled = false
	uc := NewUseCase(&fakeSampleRepo{}, &fakeSettingsRepo{settings: settings}, testCatalog(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BoardCount: 1})
	require.NoError(t, err)

	assert.False(t, resp.Enabled)
	assert.Nil(t, resp.Band)
	assert.Zero(t, resp.SampleCount)
}

func TestUseCase_Execute_FromSamples(t *testing.T) {
	// три сэмпла с серединами 180, 200, 220: центр 200
	repo := &fakeSampleRepo{samples: sampleSet(180, 200, 220)}
	uc := NewUseCase(repo, &fakeSettingsRepo{settings: enabledSettings()}, testCatalog(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BoardCount: 1})
	require.NoError(t, err)

	assert.True(t, resp.Enabled)
	assert.Equal(t, 3, resp.SampleCount)
	require.NotNil(t, resp.Band)
	assert.InDelta(t, 180.0, resp.Band.Min, 0.0001)
	assert.InDelta(t, 220.0, resp.Band.Max, 0.0001)

	assert.Equal(t, domain.DefaultMaxSamples, repo.gotLimit)
}

func TestUseCase_Execute_ColdStartFallback(t *testing.T) {
	// два валидных сэмпла при пороге 3: центр - середина коридора (340)
	repo := &fakeSampleRepo{samples: sampleSet(180, 200)}
	uc := NewUseCase(repo, &fakeSettingsRepo{settings: enabledSettings()}, testCatalog(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BoardCount: 1})
	require.NoError(t, err)

	assert.Zero(t, resp.SampleCount)
	require.NotNil(t, resp.Band)
	assert.InDelta(t, 320.0, resp.Band.Min, 0.0001)
	assert.InDelta(t, 360.0, resp.Band.Max, 0.0001)
}

func TestUseCase_Execute_InvalidSamplesExcluded(t *testing.T) {
	samples := append(sampleSet(180, 200, 220), domain.PriceSample{PriceMin: 500, PriceMax: 100})
	repo := &fakeSampleRepo{samples: samples}
	uc := NewUseCase(repo, &fakeSettingsRepo{settings: enabledSettings()}, testCatalog(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BoardCount: 1})
	require.NoError(t, err)

	// инвертированный сэмпл не входит ни в центр, ни в счётчик
	assert.Equal(t, 3, resp.SampleCount)
	assert.InDelta(t, 180.0, resp.Band.Min, 0.0001)
	assert.InDelta(t, 220.0, resp.Band.Max, 0.0001)
}

func TestUseCase_Execute_Degradation(t *testing.T) {
	t.Run("settings store failure falls back to defaults", func(t *testing.T) {
		repo := &fakeSampleRepo{samples: sampleSet(180, 200, 220)}
		uc := NewUseCase(repo, &fakeSettingsRepo{err: errors.New("db down")}, testCatalog(), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{BoardCount: 1})
		require.NoError(t, err)

		// дефолтные настройки включены: оценка возвращается
		assert.True(t, resp.Enabled)
		assert.Equal(t, 3, resp.SampleCount)
	})

	t.Run("sample store failure falls back to the corridor midpoint", func(t *testing.T) {
		repo := &fakeSampleRepo{err: errors.New("db down")}
		uc := NewUseCase(repo, &fakeSettingsRepo{settings: enabledSettings()}, testCatalog(), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{BoardCount: 1})
		require.NoError(t, err)

		assert.True(t, resp.Enabled)
		assert.Zero(t, resp.SampleCount)
		require.NotNil(t, resp.Band)
		assert.InDelta(t, 320.0, resp.Band.Min, 0.0001)
		assert.InDelta(t, 360.0, resp.Band.Max, 0.0001)
	})

	t.Run("stored settings get defaults applied", func(t *testing.T) {
		partial := &domain.EstimatorSettings{Enabled: true} // всё остальное нули
		uc := NewUseCase(&fakeSampleRepo{}, &fakeSettingsRepo{settings: partial}, testCatalog(), nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{BoardCount: 1})
		require.NoError(t, err)

		require.NotNil(t, resp.Band)
		assert.GreaterOrEqual(t, resp.Band.Min, domain.DefaultEstimateMinPrice)
		assert.LessOrEqual(t, resp.Band.Max, domain.DefaultEstimateMaxPrice)
	})
}

func TestUseCase_Execute_BoardsAndExtras(t *testing.T) {
	repo := &fakeSampleRepo{samples: sampleSet(180, 200, 220)}
	uc := NewUseCase(repo, &fakeSettingsRepo{settings: enabledSettings()}, testCatalog(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BoardCount: 2,
		Extras:     []domain.SelectedExtra{{Code: "hot_wax", Count: 2}},
	})
	require.NoError(t, err)

	// базовый диапазон [180, 220] на доску, два hot_wax сверху
	assert.InDelta(t, 180*2+25*2, resp.Band.Min, 0.0001)
	assert.InDelta(t, 220*2+45*2, resp.Band.Max, 0.0001)
}

func TestUseCase_Execute_MonotonicInBoardCount(t *testing.T) {
	repo := &fakeSampleRepo{samples: sampleSet(180, 200, 220)}
	uc := NewUseCase(repo, &fakeSettingsRepo{settings: enabledSettings()}, testCatalog(), nopLogger{})

	var prevMin, prevMax float64
	for boards := 1; boards <= 5; boards++ {
		resp, err := uc.Execute(context.Background(), &Request{BoardCount: boards})
		require.NoError(t, err)

		assert.Greater(t, resp.Band.Min, prevMin, "boards=%d", boards)
		assert.Greater(t, resp.Band.Max, prevMax, "boards=%d", boards)
		prevMin, prevMax = resp.Band.Min, resp.Band.Max
	}
}
