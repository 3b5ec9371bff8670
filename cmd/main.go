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

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
	cancelBookingHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/check_availability"
	createBlockedDateHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/create_blocked_date"
	createBookingHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/create_booking"
	deleteBlockedDateHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/delete_blocked_date"
	getBookingHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/get_booking"
	getRoomCalendarHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/get_room_calendar"
	quotePriceHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/quote_price"
	updateBookingHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/update_booking"
	updatePaymentStatusHandler "github.com/m04kA/SMC-FrontDeskService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/SMC-FrontDeskService/internal/api/middleware"
	"github.com/m04kA/SMC-FrontDeskService/internal/config"
	blockedDateRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/blocked_date"
	bookingRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/room"
	notificationServiceClient "github.com/m04kA/SMC-FrontDeskService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-FrontDeskService/internal/pricing"
	blockedDatesService "github.com/m04kA/SMC-FrontDeskService/internal/service/blocked_dates"
	bookingsService "github.com/m04kA/SMC-FrontDeskService/internal/service/bookings"
	cancelBookingUC "github.com/m04kA/SMC-FrontDeskService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-FrontDeskService/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/SMC-FrontDeskService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-FrontDeskService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FrontDeskService/pkg/logger"
	"github.com/m04kA/SMC-FrontDeskService/pkg/metrics"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
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

	log.Info("Starting SMC-FrontDeskService...")
	log.Info("Configuration loaded from %s", configPath)

	// Политика цен
	calculator, err := pricing.NewCalculator(cfg.Pricing.VATRate)
	if err != nil {
		log.Fatal("Invalid pricing config: %v", err)
	}
	cancellationPolicy, err := pricing.NewCancellationPolicy(cfg.Pricing.FreeCancellationDays)
	if err != nil {
		log.Fatal("Invalid pricing config: %v", err)
	}
	log.Info("Pricing policy: vat_rate=%.2f, free_cancellation_days=%d",
		cfg.Pricing.VATRate, cfg.Pricing.FreeCancellationDays)

	// Инициализируем метрики (если включены)
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

	// Без метрик обёртка работает как обычный *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	roomRepository := roomRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockedDateRepository := blockedDateRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	notificationClient := notificationServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	if cfg.NotificationService.URL == "" {
		log.Warn("NotificationService URL is empty, booking confirmations are disabled")
	} else {
		log.Info("Integration clients initialized (NotificationService=%s timeout=%ds)",
			cfg.NotificationService.URL, cfg.NotificationService.Timeout)
	}

	admissionSvc := admission.NewService(calculator, cancellationPolicy)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		roomRepository,
		bookingRepository,
		blockedDateRepository,
		calculator,
		txMgr,
		log,
	)
	blockedDateSvc := blockedDatesService.NewService(
		roomRepository,
		bookingRepository,
		blockedDateRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		roomRepository,
		bookingRepository,
		blockedDateRepository,
		notificationClient,
		admissionSvc,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		roomRepository,
		bookingRepository,
		blockedDateRepository,
		admissionSvc,
		txMgr,
		metricsCollector,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		blockedDateRepository,
		admissionSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	getRoomCalendar := getRoomCalendarHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(bookingSvc, log)
	quotePrice := quotePriceHandler.NewHandler(bookingSvc, log)
	createBlockedDate := createBlockedDateHandler.NewHandler(blockedDateSvc, log)
	deleteBlockedDate := deleteBlockedDateHandler.NewHandler(blockedDateSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log), middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет стоимости проживания
	api.HandleFunc("/price-quote", quotePrice.Handle).Methods(http.MethodPost)

	// Проверка доступности номера
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/payment", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// --- Календарь номера и блокировки ---
	protected.HandleFunc("/rooms/{roomId}/calendar", getRoomCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}/blocked-dates", createBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/{blockId}", deleteBlockedDate.Handle).Methods(http.MethodDelete)

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
