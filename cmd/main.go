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

	cancelSubscriptionHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/cancel_subscription"
	checkSubscriptionHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/check_subscription"
	createSeatHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/create_seat"
	createSubscriptionHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/create_subscription"
	createTimeslotHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/create_timeslot"
	deactivateSeatHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/deactivate_seat"
	deactivateTimeslotHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/deactivate_timeslot"
	deleteSubscriptionHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/delete_subscription"
	getExpiringSubscriptionsHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/get_expiring_subscriptions"
	getFreeSeatsHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/get_free_seats"
	getStudentSubscriptionsHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/get_student_subscriptions"
	getSubscriptionHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/get_subscription"
	getTimeslotOccupancyHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/get_timeslot_occupancy"
	listSeatsHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/list_seats"
	listTimeslotsHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/list_timeslots"
	renewSubscriptionHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/renew_subscription"
	updateSeatRestrictionHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/update_seat_restriction"
	updateTimeslotHandler "github.com/m04kA/SHM-SeatService/internal/api/handlers/update_timeslot"
	"github.com/m04kA/SHM-SeatService/internal/api/middleware"
	"github.com/m04kA/SHM-SeatService/internal/config"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
	studentRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/student"
	subscriptionRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/subscription"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
	notifyServiceClient "github.com/m04kA/SHM-SeatService/internal/integrations/notifyservice"
	"github.com/m04kA/SHM-SeatService/internal/notification"
	seatsService "github.com/m04kA/SHM-SeatService/internal/service/seats"
	subscriptionsService "github.com/m04kA/SHM-SeatService/internal/service/subscriptions"
	timeslotsService "github.com/m04kA/SHM-SeatService/internal/service/timeslots"
	checkSubscriptionUC "github.com/m04kA/SHM-SeatService/internal/usecase/check_subscription"
	createSubscriptionUC "github.com/m04kA/SHM-SeatService/internal/usecase/create_subscription"
	getFreeSeatsUC "github.com/m04kA/SHM-SeatService/internal/usecase/get_free_seats"
	renewSubscriptionUC "github.com/m04kA/SHM-SeatService/internal/usecase/renew_subscription"
	"github.com/m04kA/SHM-SeatService/pkg/dbmetrics"
	"github.com/m04kA/SHM-SeatService/pkg/logger"
	"github.com/m04kA/SHM-SeatService/pkg/metrics"
	"github.com/m04kA/SHM-SeatService/pkg/simpletxmanager"
	"github.com/m04kA/SHM-SeatService/pkg/txmanager"
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

	log.Info("Starting SHM-SeatService...")
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

	// Инициализируем клиента сервиса рассылки сообщений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		subscriptionRepository *subscriptionRepo.Repository
		seatRepository         *seatRepo.Repository
		timeslotRepository     *timeslotRepo.Repository
		studentRepository      *studentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		subscriptionRepository = subscriptionRepo.NewRepository(wrappedDB)
		seatRepository = seatRepo.NewRepository(wrappedDB)
		timeslotRepository = timeslotRepo.NewRepository(wrappedDB)
		studentRepository = studentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		subscriptionRepository = subscriptionRepo.NewRepository(db)
		seatRepository = seatRepo.NewRepository(db)
		timeslotRepository = timeslotRepo.NewRepository(db)
		studentRepository = studentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	seatsSvc := seatsService.NewService(
		seatRepository,
		subscriptionRepository,
		txMgr,
		log,
	)
	timeslotsSvc := timeslotsService.NewService(
		timeslotRepository,
		seatRepository,
		subscriptionRepository,
		log,
	)
	subscriptionsSvc := subscriptionsService.NewService(
		subscriptionRepository,
		studentRepository,
		log,
	)

	// Инициализируем use cases
	createSubscriptionUseCase := createSubscriptionUC.NewUseCase(
		subscriptionRepository,
		timeslotRepository,
		seatRepository,
		studentRepository,
		txMgr,
		log,
	)
	renewSubscriptionUseCase := renewSubscriptionUC.NewUseCase(
		subscriptionRepository,
		timeslotRepository,
		studentRepository,
		txMgr,
		log,
	)
	checkSubscriptionUseCase := checkSubscriptionUC.NewUseCase(
		subscriptionRepository,
		timeslotRepository,
		log,
	)
	getFreeSeatsUseCase := getFreeSeatsUC.NewUseCase(
		seatRepository,
		subscriptionRepository,
		timeslotRepository,
		log,
	)

	// Инициализируем handlers
	createSubscription := createSubscriptionHandler.NewHandler(createSubscriptionUseCase, log)
	renewSubscription := renewSubscriptionHandler.NewHandler(renewSubscriptionUseCase, log)
	checkSubscription := checkSubscriptionHandler.NewHandler(checkSubscriptionUseCase, log)
	getSubscription := getSubscriptionHandler.NewHandler(subscriptionsSvc, log)
	cancelSubscription := cancelSubscriptionHandler.NewHandler(subscriptionsSvc, log)
	deleteSubscription := deleteSubscriptionHandler.NewHandler(subscriptionsSvc, log)
	getExpiringSubscriptions := getExpiringSubscriptionsHandler.NewHandler(subscriptionsSvc, log)
	getStudentSubscriptions := getStudentSubscriptionsHandler.NewHandler(subscriptionsSvc, log)
	listSeats := listSeatsHandler.NewHandler(seatsSvc, log)
	createSeat := createSeatHandler.NewHandler(seatsSvc, log)
	updateSeatRestriction := updateSeatRestrictionHandler.NewHandler(seatsSvc, log)
	deactivateSeat := deactivateSeatHandler.NewHandler(seatsSvc, log)
	getFreeSeats := getFreeSeatsHandler.NewHandler(getFreeSeatsUseCase, log)
	listTimeslots := listTimeslotsHandler.NewHandler(timeslotsSvc, log)
	createTimeslot := createTimeslotHandler.NewHandler(timeslotsSvc, log)
	updateTimeslot := updateTimeslotHandler.NewHandler(timeslotsSvc, log)
	deactivateTimeslot := deactivateTimeslotHandler.NewHandler(timeslotsSvc, log)
	getTimeslotOccupancy := getTimeslotOccupancyHandler.NewHandler(timeslotsSvc, log)

	// Инициализируем фоновый воркер напоминаний
	var reminderWorker *notification.Worker
	if cfg.Reminders.Enabled {
		reminderWorker = notification.NewWorker(
			subscriptionRepository,
			notifyClient,
			log,
			time.Duration(cfg.Reminders.IntervalMinutes)*time.Minute,
			cfg.Reminders.ExpiringDays,
			cfg.Reminders.ExpiredDays,
			cfg.Reminders.RatePerMinute,
		)
		reminderWorker.Start()
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог таймслотов и занятость
	api.HandleFunc("/timeslots", listTimeslots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/timeslots/{timeslotId}/occupancy", getTimeslotOccupancy.Handle).Methods(http.MethodGet)

	// Карта зала: свободные места на окно дат
	api.HandleFunc("/seats", listSeats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/seats/free", getFreeSeats.Handle).Methods(http.MethodGet)

	// Предварительная проверка конфликтов (рекомендательная)
	api.HandleFunc("/subscriptions/check", checkSubscription.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Operator-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Абонементы ---
	// Оформление абонемента
	protected.HandleFunc("/subscriptions", createSubscription.Handle).Methods(http.MethodPost)

	// Лента напоминаний об истечении
	// Регистрируется раньше /subscriptions/{subscriptionId}, иначе
	// роутер примет "expiring" за ID
	protected.HandleFunc("/subscriptions/expiring", getExpiringSubscriptions.Handle).Methods(http.MethodGet)

	// Получение абонемента по ID
	protected.HandleFunc("/subscriptions/{subscriptionId}", getSubscription.Handle).Methods(http.MethodGet)

	// Продление абонемента
	protected.HandleFunc("/subscriptions/{subscriptionId}/renew", renewSubscription.Handle).Methods(http.MethodPost)

	// Отмена абонемента (мягкое удаление)
	protected.HandleFunc("/subscriptions/{subscriptionId}/cancel", cancelSubscription.Handle).Methods(http.MethodPatch)

	// Физическое удаление (исправление ошибок ввода)
	protected.HandleFunc("/subscriptions/{subscriptionId}", deleteSubscription.Handle).Methods(http.MethodDelete)

	// История абонементов студента
	protected.HandleFunc("/students/{studentId}/subscriptions", getStudentSubscriptions.Handle).Methods(http.MethodGet)

	// --- Места ---
	protected.HandleFunc("/seats", createSeat.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/seats/{seatId}/restriction", updateSeatRestriction.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/seats/{seatId}/deactivate", deactivateSeat.Handle).Methods(http.MethodPatch)

	// --- Таймслоты ---
	protected.HandleFunc("/timeslots", createTimeslot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/timeslots/{timeslotId}", updateTimeslot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/timeslots/{timeslotId}/deactivate", deactivateTimeslot.Handle).Methods(http.MethodPatch)

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

	// Останавливаем воркер напоминаний
	if reminderWorker != nil {
		reminderWorker.Stop()
	}

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
