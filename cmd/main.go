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
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/pawtrim/booking-service/internal/api/handlers/cancel_booking"
	createGroomerHandler "github.com/pawtrim/booking-service/internal/api/handlers/create_groomer"
	createHoldHandler "github.com/pawtrim/booking-service/internal/api/handlers/create_hold"
	createServiceHandler "github.com/pawtrim/booking-service/internal/api/handlers/create_service"
	getAvailableSlotsHandler "github.com/pawtrim/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/pawtrim/booking-service/internal/api/handlers/get_booking"
	getGroomerBookingsHandler "github.com/pawtrim/booking-service/internal/api/handlers/get_groomer_bookings"
	getScheduleHandler "github.com/pawtrim/booking-service/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/pawtrim/booking-service/internal/api/handlers/get_user_bookings"
	listGroomersHandler "github.com/pawtrim/booking-service/internal/api/handlers/list_groomers"
	listServicesHandler "github.com/pawtrim/booking-service/internal/api/handlers/list_services"
	paymentWebhookHandler "github.com/pawtrim/booking-service/internal/api/handlers/payment_webhook"
	sweepHoldsHandler "github.com/pawtrim/booking-service/internal/api/handlers/sweep_holds"
	transitionStatusHandler "github.com/pawtrim/booking-service/internal/api/handlers/transition_status"
	updateScheduleHandler "github.com/pawtrim/booking-service/internal/api/handlers/update_schedule"
	updateServiceHandler "github.com/pawtrim/booking-service/internal/api/handlers/update_service"
	"github.com/pawtrim/booking-service/internal/api/middleware"
	"github.com/pawtrim/booking-service/internal/config"
	bookingRepo "github.com/pawtrim/booking-service/internal/infra/storage/booking"
	groomerRepo "github.com/pawtrim/booking-service/internal/infra/storage/groomer"
	serviceRepo "github.com/pawtrim/booking-service/internal/infra/storage/service"
	"github.com/pawtrim/booking-service/internal/integrations/payments"
	bookingsService "github.com/pawtrim/booking-service/internal/service/bookings"
	catalogService "github.com/pawtrim/booking-service/internal/service/catalog"
	cancelBookingUC "github.com/pawtrim/booking-service/internal/usecase/cancel_booking"
	createHoldUC "github.com/pawtrim/booking-service/internal/usecase/create_hold"
	expireHoldsUC "github.com/pawtrim/booking-service/internal/usecase/expire_holds"
	getAvailableSlotsUC "github.com/pawtrim/booking-service/internal/usecase/get_available_slots"
	paymentCallbackUC "github.com/pawtrim/booking-service/internal/usecase/payment_callback"
	transitionStatusUC "github.com/pawtrim/booking-service/internal/usecase/transition_status"
	"github.com/pawtrim/booking-service/pkg/dbmetrics"
	"github.com/pawtrim/booking-service/pkg/logger"
	"github.com/pawtrim/booking-service/pkg/metrics"
	"github.com/pawtrim/booking-service/pkg/simpletxmanager"
	"github.com/pawtrim/booking-service/pkg/txmanager"
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

	log.Info("Starting pawtrim booking-service...")

	// Часовой пояс салона - все расчёты слотов ведутся в нём
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load salon timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Salon timezone: %s", cfg.Booking.Timezone)

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Платёжный клиент
	paymentClient := payments.NewClient(cfg.Payments.StripeSecretKey, cfg.Payments.Currency, log)
	log.Info("Payment client initialized (currency=%s)", cfg.Payments.Currency)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		groomerRepository *groomerRepo.Repository
		serviceRepository *serviceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		groomerRepository = groomerRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		groomerRepository = groomerRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, location, log)
	catalogSvc := catalogService.NewService(serviceRepository, groomerRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		groomerRepository,
		serviceRepository,
		location,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		bookingRepository,
		groomerRepository,
		serviceRepository,
		paymentClient,
		txMgr,
		createHoldUC.Config{
			HoldTTLMinutes:        cfg.Booking.HoldTTLMinutes,
			DefaultDepositPercent: cfg.Booking.DefaultDepositPercent,
			DefaultTaxRate:        cfg.Booking.DefaultTaxRate,
			Location:              location,
		},
		log,
	)

	paymentCallbackUseCase := paymentCallbackUC.NewUseCase(
		bookingRepository,
		groomerRepository,
		paymentClient,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		paymentClient,
		cancelBookingUC.Config{CancellationWindowHours: cfg.Booking.CancellationWindowHours},
		log,
	)

	transitionStatusUseCase := transitionStatusUC.NewUseCase(bookingRepository, log)

	expireHoldsUseCase := expireHoldsUC.NewUseCase(bookingRepository, paymentClient, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getGroomerBookings := getGroomerBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	transitionStatus := transitionStatusHandler.NewHandler(transitionStatusUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentCallbackUseCase, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	listGroomers := listGroomersHandler.NewHandler(catalogSvc, log)
	createGroomer := createGroomerHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	getSchedule := getScheduleHandler.NewHandler(catalogSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(catalogSvc, log)
	sweepHolds := sweepHoldsHandler.NewHandler(expireHoldsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты грумера
	api.HandleFunc("/groomers/{groomerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог активных услуг и грумеров
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/groomers", listGroomers.Handle).Methods(http.MethodGet)

	// Уведомления платёжного провайдера (подпись проверяется гейтвеем)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID / X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createHold.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", transitionStatus.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/groomers/{groomerId}/bookings", getGroomerBookings.Handle).Methods(http.MethodGet)

	// --- Каталог и расписания (персонал) ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/groomers", createGroomer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/groomers/{groomerId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/groomers/{groomerId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Ручной запуск очистки истёкших hold (для внешних планировщиков)
	r.HandleFunc("/internal/sweep-holds", sweepHolds.Handle).Methods(http.MethodPost)

	// Фоновая очистка истёкших hold по расписанию
	var cronRunner *cron.Cron
	if cfg.Sweep.Enabled {
		cronRunner = cron.New()
		_, err := cronRunner.AddFunc(cfg.Sweep.CronSpec, func() {
			if _, err := expireHoldsUseCase.Execute(context.Background()); err != nil {
				log.Error("Scheduled hold sweep failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule hold sweep (%q): %v", cfg.Sweep.CronSpec, err)
		}
		cronRunner.Start()
		log.Info("Hold sweep scheduled: %s", cfg.Sweep.CronSpec)
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cronRunner != nil {
		cronCtx := cronRunner.Stop()
		<-cronCtx.Done()
		log.Info("Hold sweep stopped")
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
