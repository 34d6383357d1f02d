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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminListBookingsHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/admin_list_bookings"
	adminListUsersHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/admin_list_users"
	cancelBookingHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/cancel_booking"
	checkinBookingHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/checkin_booking"
	createBookingHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/get_my_bookings"
	getMySlotsHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/get_my_slots"
	loginUserHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/login_user"
	registerUserHandler "github.com/m04kA/CourtBook-ReservationService/internal/api/handlers/register_user"
	"github.com/m04kA/CourtBook-ReservationService/internal/api/middleware"
	"github.com/m04kA/CourtBook-ReservationService/internal/config"
	"github.com/m04kA/CourtBook-ReservationService/internal/events"
	bookingRepo "github.com/m04kA/CourtBook-ReservationService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/CourtBook-ReservationService/internal/infra/storage/user"
	authService "github.com/m04kA/CourtBook-ReservationService/internal/service/auth"
	bookingsService "github.com/m04kA/CourtBook-ReservationService/internal/service/bookings"
	getAvailabilityUC "github.com/m04kA/CourtBook-ReservationService/internal/usecase/get_availability"
	reserveSlotUC "github.com/m04kA/CourtBook-ReservationService/internal/usecase/reserve_slot"
	"github.com/m04kA/CourtBook-ReservationService/migrations"
	"github.com/m04kA/CourtBook-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CourtBook-ReservationService/pkg/logger"
	"github.com/m04kA/CourtBook-ReservationService/pkg/metrics"
	"github.com/m04kA/CourtBook-ReservationService/pkg/mq"
	"github.com/m04kA/CourtBook-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/CourtBook-ReservationService/pkg/txmanager"
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

	log.Info("Starting CourtBook-ReservationService...")
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

	// Применяем миграции
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set migration dialect: %v", err)
	}
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем публикацию событий доступности
	var notifier bookingsService.Notifier
	if cfg.Events.Enabled {
		publisher, err := mq.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer publisher.Close()
		notifier = events.NewAMQPNotifier(publisher, log)
		log.Info("Availability events enabled (exchange=%s)", cfg.Events.Exchange)
	} else {
		notifier = events.NewNoop()
	}

	lockTimeout := time.Duration(cfg.Database.LockTimeoutMS) * time.Millisecond

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		userRepository    *userRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB, lockTimeout)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db, lockTimeout)
	}

	window := cfg.Booking.Window()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		notifier,
		log,
	)
	authSvc := authService.NewService(
		userRepository,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		log,
	)

	// Создаём административную учётную запись, если её ещё нет
	if cfg.Auth.AdminEmail != "" {
		if err := authSvc.EnsureAdmin(context.Background(),
			cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			log.Fatal("Failed to ensure admin account: %v", err)
		}
		log.Info("Admin account ensured (email=%s)", cfg.Auth.AdminEmail)
	}

	// Инициализируем use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		window,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		window,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getMySlots := getMySlotsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(reserveSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	checkinBooking := checkinBookingHandler.NewHandler(bookingSvc, log)
	adminListBookings := adminListBookingsHandler.NewHandler(bookingSvc, log)
	adminListUsers := adminListUsersHandler.NewHandler(authSvc, log)
	registerUser := registerUserHandler.NewHandler(authSvc, log)
	loginUser := loginUserHandler.NewHandler(authSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступности слотов на дату
	api.HandleFunc("/slots", getAvailability.Handle).Methods(http.MethodGet)

	// Регистрация и вход
	api.HandleFunc("/auth/register", registerUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginUser.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// Слоты текущего пользователя на дату
	protected.HandleFunc("/slots/mine", getMySlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/bookings/mine", getMyBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отметка посещения (только администратор)
	protected.HandleFunc("/bookings/{bookingId}/checkin", checkinBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют роль admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)

	admin.HandleFunc("/bookings", adminListBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/users", adminListUsers.Handle).Methods(http.MethodGet)

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
