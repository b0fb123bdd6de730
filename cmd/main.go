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
	"github.com/redis/go-redis/v9"

	createDateOverrideHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/create_date_override"
	deleteDateOverrideHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/delete_date_override"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/get_available_slots"
	getCompanyConfigHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/get_company_config"
	getDateOverrideHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/get_date_override"
	getSlotCountersHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/get_slot_counters"
	listDateOverridesHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/list_date_overrides"
	releaseSlotHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/release_slot"
	reserveSlotHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/reserve_slot"
	updateCompanyConfigHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/update_company_config"
	updateDateOverrideHandler "github.com/m04kA/SMC-DeliverySlots/internal/api/handlers/update_date_override"
	"github.com/m04kA/SMC-DeliverySlots/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlots/internal/config"
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	counterRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/counter"
	overrideRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/override"
	"github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/rediscounter"
	scheduleRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/schedule"
	companyServiceClient "github.com/m04kA/SMC-DeliverySlots/internal/integrations/companyservice"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/advance"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/availability"
	configService "github.com/m04kA/SMC-DeliverySlots/internal/service/config"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/reservation"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/schedule"
	getAvailableSlotsUC "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_available_slots"
	getSlotCountersUC "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_slot_counters"
	releaseSlotUC "github.com/m04kA/SMC-DeliverySlots/internal/usecase/release_slot"
	reserveSlotUC "github.com/m04kA/SMC-DeliverySlots/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-DeliverySlots/pkg/clock"
	"github.com/m04kA/SMC-DeliverySlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlots/pkg/logger"
	"github.com/m04kA/SMC-DeliverySlots/pkg/metrics"
	"github.com/m04kA/SMC-DeliverySlots/pkg/txmanager"
)

// counterStore общий интерфейс всех хранилищ счётчиков слотов
type counterStore interface {
	GetCount(ctx context.Context, key domain.SlotKey) (int, error)
	ListRange(ctx context.Context, companyID int64, start, end time.Time) ([]domain.SlotCounter, error)
	ConditionalIncrement(ctx context.Context, key domain.SlotKey, maxCapacity int) (bool, error)
	Decrement(ctx context.Context, key domain.SlotKey) error
}

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

	log.Info("Starting SMC-DeliverySlots...")
	log.Info("Configuration loaded from config.toml")

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}

	// Метрики (nil-коллектор безопасен: вызовы становятся no-op)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграционный клиент
	companyClient := companyServiceClient.NewClient(
		cfg.CompanyService.URL,
		time.Duration(cfg.CompanyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CompanyService=%s timeout=%ds)",
		cfg.CompanyService.URL, cfg.CompanyService.Timeout)

	// Репозитории
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	overrideRepository := overrideRepo.NewRepository(wrappedDB)

	counters, closeCounters, err := newCounterStore(cfg, wrappedDB)
	if err != nil {
		log.Fatal("Failed to initialize counter store: %v", err)
	}
	defer closeCounters()
	log.Info("Slot counters backend: %s", cfg.Counters.Backend)

	// Сервисы
	resolver := schedule.NewResolver(scheduleRepository, overrideRepository)
	calculator := availability.NewCalculator(resolver, counters)
	advanceFilter := advance.NewFilter(cfg.Scheduling.AfternoonStartHour)
	reservationSvc := reservation.NewService(resolver, counters, metricsCollector, log)
	configSvc := configService.NewService(
		scheduleRepository,
		overrideRepository,
		companyClient,
		txMgr,
		cfg.Scheduling.MaxRangeDays,
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		calculator,
		resolver,
		advanceFilter,
		companyClient,
		clock.New(loc),
		cfg.Scheduling.MaxRangeDays,
		log,
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(reservationSvc, companyClient, log)
	releaseSlotUseCase := releaseSlotUC.NewUseCase(reservationSvc, log)
	getSlotCountersUseCase := getSlotCountersUC.NewUseCase(calculator, companyClient, cfg.Scheduling.MaxRangeDays, log)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(releaseSlotUseCase, log)
	getSlotCounters := getSlotCountersHandler.NewHandler(getSlotCountersUseCase, log)
	getCompanyConfig := getCompanyConfigHandler.NewHandler(configSvc, log)
	updateCompanyConfig := updateCompanyConfigHandler.NewHandler(configSvc, log)
	listDateOverrides := listDateOverridesHandler.NewHandler(configSvc, log)
	getDateOverride := getDateOverrideHandler.NewHandler(configSvc, log)
	createDateOverride := createDateOverrideHandler.NewHandler(configSvc, log)
	updateDateOverride := updateDateOverrideHandler.NewHandler(configSvc, log)
	deleteDateOverride := deleteDateOverrideHandler.NewHandler(configSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/companies/{companyId}/delivery-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId}/delivery-config", getCompanyConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Company-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервирование (вызывается сервисом заказов) ---
	protected.HandleFunc("/companies/{companyId}/delivery-slots/reservations", reserveSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}/delivery-slots/releases", releaseSlot.Handle).Methods(http.MethodPost)

	// --- Управление расписанием ---
	protected.HandleFunc("/companies/{companyId}/delivery-config", updateCompanyConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/companies/{companyId}/delivery-overrides", listDateOverrides.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/delivery-overrides", createDateOverride.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}/delivery-overrides/{date}", getDateOverride.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/delivery-overrides/{date}", updateDateOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/companies/{companyId}/delivery-overrides/{date}", deleteDateOverride.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/companies/{companyId}/slot-counters", getSlotCounters.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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

// newCounterStore выбирает хранилище счётчиков по конфигурации
func newCounterStore(cfg *config.Config, db *dbmetrics.DB) (counterStore, func(), error) {
	switch cfg.Counters.Backend {
	case config.CounterBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}

		return rediscounter.NewStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	case config.CounterBackendMemory:
		return counterRepo.NewMemoryStore(), func() {}, nil

	default:
		return counterRepo.NewRepository(db), func() {}, nil
	}
}
