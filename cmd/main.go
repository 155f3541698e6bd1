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

	cancelBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/cancel_booking"
	changeSessionStatusHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/change_session_status"
	checkEquipmentAvailabilityHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/check_equipment_availability"
	createBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_booking"
	createMedicalRecordHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_medical_record"
	createSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_session"
	deleteSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/delete_session"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_available_slots"
	getCustomerMedicalRecordsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_customer_medical_records"
	getMedicalRecordHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_medical_record"
	getSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_session"
	listSessionsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_sessions"
	removeFromWaitlistHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/remove_from_waitlist"
	updateSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/update_session"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/config"
	"github.com/m04kA/SMC-StudioService/internal/infra/lock"
	medicalRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/medical"
	"github.com/m04kA/SMC-StudioService/internal/infra/storage/memory"
	sessionRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/session"
	"github.com/m04kA/SMC-StudioService/internal/integrations/events"
	medicalService "github.com/m04kA/SMC-StudioService/internal/service/medical"
	sessionsService "github.com/m04kA/SMC-StudioService/internal/service/sessions"
	equipmentAvailabilityUC "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/keylock"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/metrics"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

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

	log.Info("Starting SMC-StudioService...")

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: PostgreSQL или in-memory
	var (
		sessionRepository sessionsService.SessionRepository
		medicalRepository medicalService.RecordRepository
		txMgr             sessionsService.TransactionManager
	)

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
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

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		medicalRepository = medicalRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)

	case config.StorageMemory:
		sessionRepository = memory.NewSessionRepository()
		medicalRepository = memory.NewMedicalRepository()
		txMgr = txmanager.Noop{}
		log.Warn("Using in-memory storage, data is lost on restart")
	}

	// Блокировка сессий: в процессе или через Redis для нескольких инстансов
	var locker keylock.Locker = keylock.NewLocal()
	if cfg.Scheduling.LockBackend == config.LockRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = lock.NewRedisLocker(
			redisClient,
			time.Duration(cfg.Redis.LockTTL)*time.Millisecond,
			time.Duration(cfg.Redis.LockRetry)*time.Millisecond,
			log,
		)
		log.Info("Redis lock backend initialized (addr=%s)", cfg.Redis.Addr)
	}

	// Публикация доменных событий
	var publisher sessionsService.EventPublisher = events.Noop{}
	if cfg.NATS.URL != "" {
		natsPublisher, nc, err := events.Connect(cfg.NATS.URL, time.Duration(cfg.NATS.Timeout)*time.Second, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		defer nc.Drain()

		publisher = natsPublisher
		log.Info("NATS event publisher initialized (url=%s)", cfg.NATS.URL)
	}

	var bookingMetrics sessionsService.MetricsRecorder = sessionsService.NoopMetrics{}
	if cfg.Metrics.Enabled {
		bookingMetrics = metricsCollector
	}

	// Инициализируем сервисы и use cases
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		txMgr,
		locker,
		publisher,
		bookingMetrics,
		sessionsService.Config{
			CheckRoomConflicts: cfg.Scheduling.CheckRoomConflicts,
			Location:           location,
			LockTimeout:        time.Duration(cfg.Scheduling.LockTimeout) * time.Second,
		},
		log,
	)
	medicalSvc := medicalService.NewService(medicalRepository, log)
	equipmentUseCase := equipmentAvailabilityUC.NewUseCase(sessionRepository, location, log)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	listSessions := listSessionsHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	updateSession := updateSessionHandler.NewHandler(sessionSvc, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionSvc, log)
	changeSessionStatus := changeSessionStatusHandler.NewHandler(sessionSvc, log)
	createBooking := createBookingHandler.NewHandler(sessionSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(sessionSvc, log)
	removeFromWaitlist := removeFromWaitlistHandler.NewHandler(sessionSvc, log)
	checkEquipmentAvailability := checkEquipmentAvailabilityHandler.NewHandler(equipmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(equipmentUseCase, log)
	createMedicalRecord := createMedicalRecordHandler.NewHandler(medicalSvc, log)
	getMedicalRecord := getMedicalRecordHandler.NewHandler(medicalSvc, log)
	getCustomerMedicalRecords := getCustomerMedicalRecordsHandler.NewHandler(medicalSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Сессии ---
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions", listSessions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", updateSession.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/status", changeSessionStatus.Handle).Methods(http.MethodPut)

	// --- Записи и лист ожидания ---
	api.HandleFunc("/sessions/{sessionId}/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/waitlist/remove", removeFromWaitlist.Handle).Methods(http.MethodPatch)

	// --- Оборудование ---
	api.HandleFunc("/equipment/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipmentType}/availability", checkEquipmentAvailability.Handle).Methods(http.MethodGet)

	// --- Медицинские анкеты ---
	api.HandleFunc("/medical-records", createMedicalRecord.Handle).Methods(http.MethodPost)
	api.HandleFunc("/medical-records/{recordId}", getMedicalRecord.Handle).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}/medical-records", getCustomerMedicalRecords.Handle).Methods(http.MethodGet)

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
		log.Info("Starting server on %s (storage=%s, locks=%s)", addr, cfg.Storage.Driver, cfg.Scheduling.LockBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
