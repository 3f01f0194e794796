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
	"github.com/spf13/pflag"

	createBookingHandler "github.com/m04kA/SMC-LaneBooking/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-LaneBooking/internal/api/handlers/get_booking"
	getLaneCapacityHandler "github.com/m04kA/SMC-LaneBooking/internal/api/handlers/get_lane_capacity"
	getUserBookingsHandler "github.com/m04kA/SMC-LaneBooking/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-LaneBooking/internal/api/handlers/health"
	"github.com/m04kA/SMC-LaneBooking/internal/api/middleware"
	"github.com/m04kA/SMC-LaneBooking/internal/config"
	intervalCache "github.com/m04kA/SMC-LaneBooking/internal/infra/cache/intervals"
	"github.com/m04kA/SMC-LaneBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-LaneBooking/internal/infra/storage/booking"
	capacityRepo "github.com/m04kA/SMC-LaneBooking/internal/infra/storage/capacity"
	catalogRepo "github.com/m04kA/SMC-LaneBooking/internal/infra/storage/catalog"
	stationRepo "github.com/m04kA/SMC-LaneBooking/internal/infra/storage/station"
	"github.com/m04kA/SMC-LaneBooking/internal/integrations/identity"
	bookingsService "github.com/m04kA/SMC-LaneBooking/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-LaneBooking/internal/usecase/create_booking"
	getLaneCapacityUC "github.com/m04kA/SMC-LaneBooking/internal/usecase/get_lane_capacity"
	"github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaneBooking/pkg/logger"
	"github.com/m04kA/SMC-LaneBooking/pkg/metrics"
	"github.com/m04kA/SMC-LaneBooking/pkg/txmanager"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to the TOML config file")
	pflag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-LaneBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var bookingMetrics createBookingUC.Metrics = metrics.Noop{}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		bookingMetrics = metricsCollector
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

	// Обёртка над БД: метрики запросов (если включены) и транзакции через контекст
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	capacityRepository := capacityRepo.NewRepository(wrappedDB)
	stationRepository := stationRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кеш интервалов (если включен)
	var intervalSource createBookingUC.IntervalRepository = capacityRepository
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, interval cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			intervalSource = intervalCache.NewCache(rdb, capacityRepository,
				time.Duration(cfg.Redis.IntervalCacheTTL)*time.Second, log)
			log.Info("Interval cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.IntervalCacheTTL)
		}
		cancel()
	}

	// Публикация событий (если включена)
	var publisher createBookingUC.EventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		amqpPublisher := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Queue, log)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Booking events enabled (queue=%s)", cfg.Events.Queue)
	}

	// Определение пользователя по токену
	var resolver middleware.IdentityResolver
	switch cfg.Auth.Mode {
	case config.AuthModeRemote:
		resolver = identity.NewClient(cfg.Auth.IdentityURL, time.Duration(cfg.Auth.Timeout)*time.Second, log)
		log.Info("Identity resolved remotely (url=%s, timeout=%ds)", cfg.Auth.IdentityURL, cfg.Auth.Timeout)
	default:
		resolver = identity.NewJWTResolver(cfg.Auth.JWTSecret)
		log.Info("Identity resolved from HS256 tokens")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		stationRepository,
		catalogRepository,
		intervalSource,
		capacityRepository,
		txMgr,
		publisher,
		bookingMetrics,
		time.Duration(cfg.Booking.CommitTimeout)*time.Second,
		log,
	)

	getLaneCapacityUseCase := getLaneCapacityUC.NewUseCase(
		stationRepository,
		intervalSource,
		capacityRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getLaneCapacity := getLaneCapacityHandler.NewHandler(getLaneCapacityUseCase, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Загрузка линии по интервалам
	api.HandleFunc("/lanes/{laneId}/capacity", getLaneCapacity.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(resolver, log))

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Бронирования текущего пользователя
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(r),
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
