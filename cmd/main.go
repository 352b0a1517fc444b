package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availability"
	getBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_bookings"
	getDayOverrideHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_day_override"
	getEstimatorSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_estimator_settings"
	getPriceEstimateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_price_estimate"
	requestRescheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/request_reschedule"
	setAcceptedPriceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/set_accepted_price"
	updateEstimatorSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_estimator_settings"
	upsertDayOverrideHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/upsert_day_override"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
	priceSampleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/pricesample"
	rateLimitRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/ratelimit"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	auditLogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
	leadIntakeClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/leadintake"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	overridesService "github.com/m04kA/SMC-AppointmentService/internal/service/overrides"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	estimatePriceUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/estimate_price"
	getAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// noopLeadIntake заглушка для выключенной интеграции lead intake
// Заявка подтверждается, но попадает только в лог сервиса
type noopLeadIntake struct {
	log *logger.Logger
}

func (n noopLeadIntake) SubmitRescheduleRequest(_ context.Context, lead *leadIntakeClient.RescheduleLead) error {
	n.log.Info("Lead intake disabled, reschedule lead logged only: booking_id=%d", lead.BookingID)
	return nil
}

// noopAudit заглушка для выключенной интеграции аудита
type noopAudit struct{}

func (noopAudit) RecordAsync(_ *auditLogClient.Event) {}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	var leadClient bookingsService.LeadIntakeClient
	if cfg.LeadIntake.Enabled {
		leadClient = leadIntakeClient.NewClient(
			cfg.LeadIntake.URL,
			time.Duration(cfg.LeadIntake.Timeout)*time.Second,
			log,
		)
		log.Info("Lead intake client initialized (url=%s, timeout=%ds)", cfg.LeadIntake.URL, cfg.LeadIntake.Timeout)
	} else {
		leadClient = noopLeadIntake{log: log}
		log.Info("Lead intake integration disabled")
	}

	var auditClient bookingsService.AuditRecorder
	if cfg.AuditLog.Enabled {
		auditClient = auditLogClient.NewClient(
			cfg.AuditLog.URL,
			time.Duration(cfg.AuditLog.Timeout)*time.Second,
			log,
		)
		log.Info("Audit log client initialized (url=%s, timeout=%ds)", cfg.AuditLog.URL, cfg.AuditLog.Timeout)
	} else {
		auditClient = noopAudit{}
		log.Info("Audit log integration disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		overrideRepository    *overrideRepo.Repository
		priceSampleRepository *priceSampleRepo.Repository
		settingsRepository    *settingsRepo.Repository
		rateLimitRepository   *rateLimitRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		overrideRepository = overrideRepo.NewRepository(wrappedDB)
		priceSampleRepository = priceSampleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		rateLimitRepository = rateLimitRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		overrideRepository = overrideRepo.NewRepository(db)
		priceSampleRepository = priceSampleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		rateLimitRepository = rateLimitRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		leadClient,
		auditClient,
		cfg.Booking.ShortNoticeHours,
		log,
	)
	overrideSvc := overridesService.NewService(
		overrideRepository,
		auditClient,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		overrideRepository,
		cfg.Booking.StandardWindowDays,
		cfg.Booking.AcuteWindowDays,
		cfg.Booking.DemoSeed,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		overrideRepository,
		txMgr,
		auditClient,
		time.Duration(cfg.Booking.ReserveTimeoutSeconds)*time.Second,
		log,
	)

	estimatePriceUseCase := estimatePriceUC.NewUseCase(
		priceSampleRepository,
		settingsRepository,
		cfg.ExtrasCatalog(),
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	requestReschedule := requestRescheduleHandler.NewHandler(bookingSvc, log)
	getPriceEstimate := getPriceEstimateHandler.NewHandler(estimatePriceUseCase, log)
	getDayOverride := getDayOverrideHandler.NewHandler(overrideSvc, log)
	upsertDayOverride := upsertDayOverrideHandler.NewHandler(overrideSvc, log)
	getEstimatorSettings := getEstimatorSettingsHandler.NewHandler(settingsSvc, log)
	updateEstimatorSettings := updateEstimatorSettingsHandler.NewHandler(settingsSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	setAcceptedPrice := setAcceptedPriceHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Оборачивает мутирующие публичные endpoints лимитером
	rateLimitWindow := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	limited := func(action string, h http.HandlerFunc) http.Handler {
		if !cfg.RateLimit.Enabled {
			return h
		}
		return middleware.RateLimit(rateLimitRepository, action, cfg.RateLimit.MaxRequests, rateLimitWindow, log)(h)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные старты по дням окна
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.Handle("/bookings", limited("create_booking", createBooking.Handle)).Methods(http.MethodPost)

	// Отмена бронирования по manage-токену
	api.Handle("/bookings/cancel", limited("cancel_booking", cancelBooking.Handle)).Methods(http.MethodPost)

	// Заявка на перенос по manage-токену
	api.Handle("/bookings/reschedule-request",
		limited("request_reschedule", requestReschedule.Handle)).Methods(http.MethodPost)

	// Оценка стоимости заявки
	api.Handle("/price-estimate", limited("price_estimate", getPriceEstimate.Handle)).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.APIKey, log))

	// --- Переопределения открытых слотов ---
	admin.HandleFunc("/day-overrides/{date}", getDayOverride.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/day-overrides/{date}", upsertDayOverride.Handle).Methods(http.MethodPut)

	// --- Настройки прайс-эстимейтора ---
	admin.HandleFunc("/estimator-settings", getEstimatorSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/estimator-settings", updateEstimatorSettings.Handle).Methods(http.MethodPut)

	// --- Заказы ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/accepted-price", setAcceptedPrice.Handle).Methods(http.MethodPut)

	// Периодическая чистка закрытых окон лимитера
	stopCleanupCh := make(chan struct{})
	if cfg.RateLimit.Enabled {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					cutoff := time.Now().Add(-2 * rateLimitWindow)
					deleted, err := rateLimitRepository.CleanupBefore(context.Background(), cutoff)
					if err != nil {
						log.Error("Rate limit cleanup failed: %v", err)
						continue
					}
					if deleted > 0 {
						log.Info("Rate limit cleanup removed %d expired windows", deleted)
					}
				case <-stopCleanupCh:
					return
				}
			}
		}()
		log.Info("Rate limiting enabled (window=%ds, max=%d)", cfg.RateLimit.WindowSeconds, cfg.RateLimit.MaxRequests)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	if cfg.RateLimit.Enabled {
		close(stopCleanupCh)
	}
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
