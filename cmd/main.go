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

	createBlockHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_block"
	getBlocksHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_blocks"
	getBulkAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_bulk_availability"
	getHoursHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_hours"
	getSalonConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_salon_config"
	getSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_slots"
	runSweepHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/run_sweep"
	updateSalonConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_salon_config"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	blockRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	reminderRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reminder"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	notifyServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	salonServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	blocksService "github.com/m04kA/SMC-ScheduleService/internal/service/blocks"
	configService "github.com/m04kA/SMC-ScheduleService/internal/service/config"
	createBlockUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_block"
	getBulkAvailabilityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_bulk_availability"
	getSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slots"
	resolveHoursUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/resolve_hours"
	runReminderSweepUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/run_reminder_sweep"
	reminderWorker "github.com/m04kA/SMC-ScheduleService/internal/worker/reminder"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (SalonService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository *scheduleRepo.Repository
		bookingRepository  *bookingRepo.Repository
		blockRepository    *blockRepo.Repository
		configRepository   *configRepo.Repository
		reminderRepository *reminderRepo.Repository
	)

	// Интерфейс transaction manager, используемый в usecases
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		reminderRepository = reminderRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		reminderRepository = reminderRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	blocksSvc := blocksService.NewService(
		blockRepository,
		salonClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		salonClient,
		log,
	)

	// Инициализируем use cases
	resolveHoursUseCase := resolveHoursUC.NewUseCase(
		scheduleRepository,
		salonClient,
		log,
	)

	getSlotsUseCase := getSlotsUC.NewUseCase(
		bookingRepository,
		blockRepository,
		scheduleRepository,
		configRepository,
		salonClient,
		log,
	)

	getBulkAvailabilityUseCase := getBulkAvailabilityUC.NewUseCase(
		bookingRepository,
		blockRepository,
		scheduleRepository,
		configRepository,
		salonClient,
		log,
	)

	createBlockUseCase := createBlockUC.NewUseCase(
		bookingRepository,
		blockRepository,
		configRepository,
		salonClient,
		txMgr,
		log,
	)

	// Типизированный nil в интерфейсе прошёл бы проверку != nil,
	// поэтому метрики подставляются только когда включены
	var sweepMetrics runReminderSweepUC.MetricsCollector
	var workerMetrics reminderWorker.MetricsCollector
	if cfg.Metrics.Enabled {
		sweepMetrics = metricsCollector
		workerMetrics = metricsCollector
	}

	runReminderSweepUseCase := runReminderSweepUC.NewUseCase(
		configRepository,
		bookingRepository,
		reminderRepository,
		salonClient,
		notifyClient,
		sweepMetrics,
		log,
	)

	// Инициализируем handlers
	getHours := getHoursHandler.NewHandler(resolveHoursUseCase, log)
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	getBulkAvailability := getBulkAvailabilityHandler.NewHandler(getBulkAvailabilityUseCase, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, log)
	getBlocks := getBlocksHandler.NewHandler(blocksSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blocksSvc, log)
	getSalonConfig := getSalonConfigHandler.NewHandler(configSvc, log)
	updateSalonConfig := updateSalonConfigHandler.NewHandler(configSvc, log)
	runSweep := runSweepHandler.NewHandler(runReminderSweepUseCase, log)

	// Контекст фоновых задач, отменяется при остановке сервиса
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	// Запускаем фоновый воркер напоминаний (если включён)
	if cfg.Reminders.Enabled {
		worker := reminderWorker.NewWorker(
			runReminderSweepUseCase,
			time.Duration(cfg.Reminders.SweepIntervalMinutes)*time.Minute,
			workerMetrics,
			log,
		)
		go worker.Run(workerCtx)
		log.Info("Reminder worker started (interval=%dm)", cfg.Reminders.SweepIntervalMinutes)
	} else {
		log.Info("Reminder worker disabled")
	}

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Рабочие часы мастера на дату
	api.HandleFunc("/masters/{masterId}/hours", getHours.Handle).Methods(http.MethodGet)

	// Сетка слотов мастера на дату
	api.HandleFunc("/masters/{masterId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// Сводка доступности мастера за период
	api.HandleFunc("/masters/{masterId}/availability", getBulkAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация расписания салона
	api.HandleFunc("/salons/{salonId}/schedule-config", getSalonConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Блокировки времени ---
	// Создание блокировки (или проверка конфликта через ?dryRun)
	protected.HandleFunc("/masters/{masterId}/blocks", createBlock.Handle).Methods(http.MethodPost)

	// Список блокировок мастера
	protected.HandleFunc("/masters/{masterId}/blocks", getBlocks.Handle).Methods(http.MethodGet)

	// Удаление блокировки
	protected.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// --- Управление салоном (для менеджеров) ---
	// Обновление конфигурации расписания
	protected.HandleFunc("/salons/{salonId}/schedule-config", updateSalonConfig.Handle).Methods(http.MethodPut)

	// Ручной запуск прохода рассылки напоминаний
	protected.HandleFunc("/reminders/sweep", runSweep.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновый воркер
	cancelWorker()

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
