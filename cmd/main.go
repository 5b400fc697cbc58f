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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/slotly/appointment-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/slotly/appointment-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/slotly/appointment-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/slotly/appointment-service/internal/api/handlers/get_available_slots"
	getOwnerScheduleHandler "github.com/slotly/appointment-service/internal/api/handlers/get_owner_schedule"
	getScheduleConfigHandler "github.com/slotly/appointment-service/internal/api/handlers/get_schedule_config"
	getUserAppointmentsHandler "github.com/slotly/appointment-service/internal/api/handlers/get_user_appointments"
	updateScheduleConfigHandler "github.com/slotly/appointment-service/internal/api/handlers/update_schedule_config"
	"github.com/slotly/appointment-service/internal/api/middleware"
	"github.com/slotly/appointment-service/internal/config"
	"github.com/slotly/appointment-service/internal/infra/notify"
	appointmentRepo "github.com/slotly/appointment-service/internal/infra/storage/appointment"
	intervalRepo "github.com/slotly/appointment-service/internal/infra/storage/interval"
	scheduleRepo "github.com/slotly/appointment-service/internal/infra/storage/schedule"
	catalogServiceClient "github.com/slotly/appointment-service/internal/integrations/catalogservice"
	appointmentsService "github.com/slotly/appointment-service/internal/service/appointments"
	scheduleService "github.com/slotly/appointment-service/internal/service/schedule"
	cancelAppointmentUC "github.com/slotly/appointment-service/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/slotly/appointment-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/slotly/appointment-service/internal/usecase/get_available_slots"
	"github.com/slotly/appointment-service/pkg/dbmetrics"
	"github.com/slotly/appointment-service/pkg/logger"
	"github.com/slotly/appointment-service/pkg/metrics"
	"github.com/slotly/appointment-service/pkg/simpletxmanager"
	"github.com/slotly/appointment-service/pkg/txmanager"
)

func main() {
	// .env опционален: переменные окружения переопределяют config.toml
	_ = godotenv.Load()

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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона, в которой интерпретируются рабочие часы владельцев
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Server.Timezone, err)
	}

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

	// Инициализируем клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog service client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Публикация событий изменения расписания (если включена)
	type ScheduleNotifier interface {
		ScheduleChanged(ctx context.Context, event notify.ScheduleChangedEvent) error
	}
	var scheduleNotifier ScheduleNotifier = notify.NopPublisher{}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		scheduleNotifier = notify.NewRedisPublisher(redisClient, log)
		log.Info("Schedule change events enabled (redis=%s, channel=%s)",
			cfg.Redis.Addr, notify.ChannelScheduleChanged)
	} else {
		log.Info("Schedule change events disabled")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		intervalRepository    *intervalRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		intervalRepository = intervalRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		intervalRepository = intervalRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		intervalRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		scheduleNotifier,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		intervalRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		scheduleNotifier,
		loc,
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		intervalRepository,
		txMgr,
		scheduleNotifier,
		loc,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		intervalRepository,
		scheduleRepository,
		catalogClient,
		loc,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getOwnerSchedule := getOwnerScheduleHandler.NewHandler(appointmentSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов для записи
	api.HandleFunc("/owners/{ownerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение конфигурации расписания владельца
	api.HandleFunc("/owners/{ownerId}/schedule-config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для владельцев) ---
	// Календарь владельца с занятыми блоками
	protected.HandleFunc("/owners/{ownerId}/schedule", getOwnerSchedule.Handle).Methods(http.MethodGet)

	// Обновление конфигурации расписания
	protected.HandleFunc("/owners/{ownerId}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
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
