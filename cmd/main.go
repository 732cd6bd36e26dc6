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

	addExcludedDateHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/add_excluded_date"
	approveRegistrationRequestHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/approve_registration_request"
	associateRegistrationRequestHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/associate_registration_request"
	cancelAppointmentHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/cancel_appointment"
	completeAppointmentsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/complete_appointments"
	confirmAppointmentHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/confirm_appointment"
	countRegistrationRequestsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/count_registration_requests"
	createDonationHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/create_donation"
	createDonorHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/create_donor"
	createSuspensionHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/create_suspension"
	deleteAppointmentHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/delete_appointment"
	deleteDonorHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/delete_donor"
	deleteRegistrationRequestHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/delete_registration_request"
	endSuspensionHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/end_suspension"
	getDonorHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/get_donor"
	getDonorDonationsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/get_donor_donations"
	getMyAppointmentsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/get_my_appointments"
	getMyDonationsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/get_my_donations"
	getProfileHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/get_profile"
	getScheduleHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/list_appointments"
	listDonationsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/list_donations"
	listDonorsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/list_donors"
	listExcludedDatesHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/list_excluded_dates"
	listExpiringDonorsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/list_expiring_donors"
	listRegistrationRequestsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/list_registration_requests"
	listSuspensionsHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/list_suspensions"
	overrideAppointmentHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/override_appointment"
	proposeAppointmentHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/propose_appointment"
	rejectRegistrationRequestHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/reject_registration_request"
	removeExcludedDateHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/remove_excluded_date"
	submitRegistrationRequestHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/submit_registration_request"
	updateDonorHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/update_donor"
	updateProfileHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/update_profile"
	updateScheduleHandler "github.com/m04kA/SMC-DonorService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-DonorService/internal/api/middleware"
	"github.com/m04kA/SMC-DonorService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
	donationRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donation"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	ledgerRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/ledger"
	registrationRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/registration"
	scheduleRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/schedule"
	suspensionRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/suspension"
	appointmentsService "github.com/m04kA/SMC-DonorService/internal/service/appointments"
	donationsService "github.com/m04kA/SMC-DonorService/internal/service/donations"
	donorsService "github.com/m04kA/SMC-DonorService/internal/service/donors"
	registrationsService "github.com/m04kA/SMC-DonorService/internal/service/registrations"
	scheduleService "github.com/m04kA/SMC-DonorService/internal/service/schedule"
	suspensionsService "github.com/m04kA/SMC-DonorService/internal/service/suspensions"
	completeAppointmentsUC "github.com/m04kA/SMC-DonorService/internal/usecase/complete_appointments"
	confirmAppointmentUC "github.com/m04kA/SMC-DonorService/internal/usecase/confirm_appointment"
	overrideAppointmentUC "github.com/m04kA/SMC-DonorService/internal/usecase/override_appointment"
	proposeAppointmentUC "github.com/m04kA/SMC-DonorService/internal/usecase/propose_appointment"
	"github.com/m04kA/SMC-DonorService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DonorService/pkg/logger"
	"github.com/m04kA/SMC-DonorService/pkg/metrics"
	"github.com/m04kA/SMC-DonorService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-DonorService/pkg/txmanager"
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

	log.Info("Starting SMC-DonorService...")
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
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	// Инициализируем репозитории (с метриками или без)
	var (
		donorRepository        *donorRepo.Repository
		appointmentRepository  *appointmentRepo.Repository
		donationRepository     *donationRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		ledgerRepository       *ledgerRepo.Repository
		registrationRepository *registrationRepo.Repository
		suspensionRepository   *suspensionRepo.Repository
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

		// Инициализируем репозитории с обёрткой метрик
		donorRepository = donorRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		donationRepository = donationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		ledgerRepository = ledgerRepo.NewRepository(wrappedDB)
		registrationRepository = registrationRepo.NewRepository(wrappedDB)
		suspensionRepository = suspensionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		donorRepository = donorRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		donationRepository = donationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		ledgerRepository = ledgerRepo.NewRepository(db)
		registrationRepository = registrationRepo.NewRepository(db)
		suspensionRepository = suspensionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	startupCtx := context.Background()

	// Гарантируем наличие строки расписания по умолчанию
	if err := scheduleRepository.EnsureDefault(startupCtx); err != nil {
		log.Fatal("Failed to ensure default schedule: %v", err)
	}

	// Восстанавливаем счётчики занятости дат по подтверждённым записям
	if err := ledgerRepository.Rebuild(startupCtx); err != nil {
		log.Fatal("Failed to rebuild reservation ledger: %v", err)
	}
	log.Info("Reservation ledger rebuilt from confirmed appointments")

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	donorsSvc := donorsService.NewService(
		donorRepository,
		donationRepository,
		appointmentRepository,
		suspensionRepository,
		log,
		donorsService.RealTimeProvider{},
	)
	donationsSvc := donationsService.NewService(
		donationRepository,
		donorRepository,
		txMgr,
		log,
		donationsService.RealTimeProvider{},
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		ledgerRepository,
		txMgr,
		log,
	)
	suspensionsSvc := suspensionsService.NewService(
		suspensionRepository,
		donorRepository,
		txMgr,
		log,
		suspensionsService.RealTimeProvider{},
	)
	registrationsSvc := registrationsService.NewService(
		registrationRepository,
		donorRepository,
		donationRepository,
		txMgr,
		log,
		registrationsService.RealTimeProvider{},
	)

	// Инициализируем use cases
	proposeAppointmentUseCase := proposeAppointmentUC.NewUseCase(
		appointmentRepository,
		donorRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	confirmAppointmentUseCase := confirmAppointmentUC.NewUseCase(
		appointmentRepository,
		donorRepository,
		scheduleRepository,
		ledgerRepository,
		txMgr,
		log,
	)
	overrideAppointmentUseCase := overrideAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		ledgerRepository,
		txMgr,
		log,
	)
	completeAppointmentsUseCase := completeAppointmentsUC.NewUseCase(
		appointmentRepository,
		donorRepository,
		donationRepository,
		txMgr,
		log,
	)

	// Закрываем прошедшие подтверждённые записи, накопившиеся за время простоя
	if result, err := completeAppointmentsUseCase.Execute(startupCtx); err != nil {
		log.Error("Startup completion sweep failed: %v", err)
	} else if result.Completed > 0 {
		log.Info("Startup completion sweep: completed=%d", result.Completed)
	}

	// Инициализируем handlers
	submitRegistrationRequest := submitRegistrationRequestHandler.NewHandler(registrationsSvc, log)
	getProfile := getProfileHandler.NewHandler(donorsSvc, log)
	updateProfile := updateProfileHandler.NewHandler(donorsSvc, log)
	getMyDonations := getMyDonationsHandler.NewHandler(donationsSvc, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(confirmAppointmentUseCase, log)

	createDonor := createDonorHandler.NewHandler(donorsSvc, log)
	listDonors := listDonorsHandler.NewHandler(donorsSvc, log)
	getDonor := getDonorHandler.NewHandler(donorsSvc, log)
	updateDonor := updateDonorHandler.NewHandler(donorsSvc, log)
	deleteDonor := deleteDonorHandler.NewHandler(donorsSvc, log)
	listExpiringDonors := listExpiringDonorsHandler.NewHandler(donorsSvc, cfg.Scheduling.ExpiringWindowDays, log)

	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	proposeAppointment := proposeAppointmentHandler.NewHandler(proposeAppointmentUseCase, log)
	overrideAppointment := overrideAppointmentHandler.NewHandler(overrideAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointments := completeAppointmentsHandler.NewHandler(completeAppointmentsUseCase, log)

	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	listExcludedDates := listExcludedDatesHandler.NewHandler(scheduleSvc, log)
	addExcludedDate := addExcludedDateHandler.NewHandler(scheduleSvc, log)
	removeExcludedDate := removeExcludedDateHandler.NewHandler(scheduleSvc, log)

	createDonation := createDonationHandler.NewHandler(donationsSvc, log)
	listDonations := listDonationsHandler.NewHandler(donationsSvc, log)
	getDonorDonations := getDonorDonationsHandler.NewHandler(donationsSvc, log)

	createSuspension := createSuspensionHandler.NewHandler(suspensionsSvc, log)
	listSuspensions := listSuspensionsHandler.NewHandler(suspensionsSvc, log)
	endSuspension := endSuspensionHandler.NewHandler(suspensionsSvc, log)

	listRegistrationRequests := listRegistrationRequestsHandler.NewHandler(registrationsSvc, log)
	countRegistrationRequests := countRegistrationRequestsHandler.NewHandler(registrationsSvc, log)
	approveRegistrationRequest := approveRegistrationRequestHandler.NewHandler(registrationsSvc, log)
	associateRegistrationRequest := associateRegistrationRequestHandler.NewHandler(registrationsSvc, log)
	rejectRegistrationRequest := rejectRegistrationRequestHandler.NewHandler(registrationsSvc, log)
	deleteRegistrationRequest := deleteRegistrationRequestHandler.NewHandler(registrationsSvc, log)

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

	// Заявка на регистрацию донора
	api.HandleFunc("/auth/registration-request", submitRegistrationRequest.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Личный кабинет донора ---
	protected.HandleFunc("/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me", updateProfile.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/me/donations", getMyDonations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/appointments", getMyAppointments.Handle).Methods(http.MethodGet)

	// Подтверждение одной из предложенных дат
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют активного администратора)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(donorRepository, log))

	// --- Доноры ---
	// Статический маршрут /users/expiring регистрируем раньше /users/{userId}
	admin.HandleFunc("/users/expiring", listExpiringDonors.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/users", listDonors.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/users", createDonor.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/users/{userId}", getDonor.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", updateDonor.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/users/{userId}", deleteDonor.Handle).Methods(http.MethodDelete)

	// --- Записи на донацию ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/propose", proposeAppointment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/complete", completeAppointments.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{appointmentId}", overrideAppointment.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// --- Расписание центра ---
	admin.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/excluded-dates", listExcludedDates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/excluded-dates", addExcludedDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/excluded-dates/{dateId}", removeExcludedDate.Handle).Methods(http.MethodDelete)

	// --- Донации ---
	admin.HandleFunc("/donations", listDonations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/donations", createDonation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/donors/{userId}/donations", getDonorDonations.Handle).Methods(http.MethodGet)

	// --- Отстранения ---
	admin.HandleFunc("/suspensions", listSuspensions.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/suspensions", createSuspension.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/suspensions/{suspensionId}/end", endSuspension.Handle).Methods(http.MethodPut)

	// --- Заявки на регистрацию ---
	admin.HandleFunc("/registration-requests/count", countRegistrationRequests.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/registration-requests", listRegistrationRequests.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/registration-requests/{requestId}/approve", approveRegistrationRequest.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/registration-requests/{requestId}/associate", associateRegistrationRequest.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/registration-requests/{requestId}/reject", rejectRegistrationRequest.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/registration-requests/{requestId}", deleteRegistrationRequest.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := cfg.Server.Addr()
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
