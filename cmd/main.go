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

	barbersHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/barbers"
	cancelBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getBarberBookingsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_barber_bookings"
	getBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_booking"
	getBookingConfigHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_booking_config"
	getCustomerBookingsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_customer_bookings"
	getNotificationsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_notifications"
	getOccupancyHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_occupancy"
	getStatsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_stats"
	payBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/pay_booking"
	reviewsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/reviews"
	servicesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/services"
	updateBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_booking"
	updateBookingConfigHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_booking_config"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/broker"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/cache/occupancy"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/config"
	notificationRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/notification"
	reviewRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/review"
	barbersService "github.com/m04kA/SMC-BarberBooking/internal/service/barbers"
	bookingsService "github.com/m04kA/SMC-BarberBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	configService "github.com/m04kA/SMC-BarberBooking/internal/service/config"
	notificationsService "github.com/m04kA/SMC-BarberBooking/internal/service/notifications"
	reviewsService "github.com/m04kA/SMC-BarberBooking/internal/service/reviews"
	statsService "github.com/m04kA/SMC-BarberBooking/internal/service/stats"
	createBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
	getOccupancyUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_occupancy"
	updateBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: nil-коллектор безопасен, все методы становятся no-op
	var metricsCollector *metrics.Metrics
	var recorder dbmetrics.Recorder
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		recorder = metricsCollector
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	barberRepository := barberRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)

	// Кеш занятости: без Redis работает как выключенный
	occupancyCache := occupancy.New(nil, cfg.Redis.Prefix, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	if cfg.Redis.Enabled {
		redisClient, err := occupancy.NewClient(context.Background(), cfg.Redis.URL)
		if err != nil {
			log.Warn("Redis unavailable, occupancy cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			occupancyCache = occupancy.New(redisClient, cfg.Redis.Prefix, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
			log.Info("Occupancy cache enabled (ttl=%ds)", cfg.Redis.TTLSeconds)
		}
	}

	// Публикация событий в брокер опциональна
	var publisher notificationsService.EventPublisher
	if cfg.Broker.Enabled {
		amqpPublisher := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, log)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Booking events will be published to exchange %s", cfg.Broker.Exchange)
	}

	dispatcher := notificationsService.NewDispatcher(notificationRepository, publisher, metricsCollector, log, cfg.Notifications.QueueSize)

	// Сервисы
	defaults := cfg.Booking.ToDomain()
	configSvc := configService.NewService(configRepository, txMgr, defaults, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	barberSvc := barbersService.NewService(barberRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, barberRepository, txMgr, log)
	statsSvc := statsService.NewService(barberRepository, bookingRepository, log)
	notificationSvc := notificationsService.NewService(notificationRepository, log)

	// Use cases
	getOccupancyUseCase := getOccupancyUC.NewUseCase(bookingRepository, occupancyCache, configSvc, defaults, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		barberRepository,
		catalogRepository,
		configSvc,
		occupancyCache,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		configSvc,
		occupancyCache,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)

	// Handlers
	getOccupancy := getOccupancyHandler.NewHandler(getOccupancyUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getOccupancyUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateBookingUseCase, log)
	payBooking := payBookingHandler.NewHandler(updateBookingUseCase, log)
	getBarberBookings := getBarberBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	getBookingConfig := getBookingConfigHandler.NewHandler(configSvc, log)
	updateBookingConfig := updateBookingConfigHandler.NewHandler(configSvc, log)
	barbers := barbersHandler.NewHandler(barberSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	reviews := reviewsHandler.NewHandler(reviewSvc, log)
	getStats := getStatsHandler.NewHandler(statsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log))
		log.Info("Rate limit enabled: %d req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (X-User-ID не обязателен)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	public.HandleFunc("/barbers/{barberId}/occupancy", getOccupancy.Handle).Methods(http.MethodGet)
	public.HandleFunc("/barbers/{barberId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/barbers", barbers.List).Methods(http.MethodGet)
	public.HandleFunc("/barbers/{barberId}", barbers.Get).Methods(http.MethodGet)
	public.HandleFunc("/barbers/{barberId}/reviews", reviews.ListByBarber).Methods(http.MethodGet)
	public.HandleFunc("/services", services.List).Methods(http.MethodGet)
	public.HandleFunc("/config", getBookingConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID, роль из X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/pay", payBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/barbers/{barberId}/bookings", getBarberBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerRef}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerRef}/notifications", getNotifications.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	protected.HandleFunc("/barbers", barbers.Create).Methods(http.MethodPost)
	protected.HandleFunc("/barbers/{barberId}", barbers.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/reviews", reviews.Create).Methods(http.MethodPost)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", services.Update).Methods(http.MethodPut)
	admin.HandleFunc("/config", updateBookingConfig.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/admin/stats", getStats.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся записи уже поставленных уведомлений
	dispatcher.Close()
	log.Info("Notification dispatcher drained")

	close(stopMetricsCh)
	log.Info("Server stopped gracefully")
}
