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

	cancelAppointmentHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/delete_appointment"
	getAppointmentsByPhoneHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/get_appointments_by_phone"
	getAvailableSlotsHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/get_schedule"
	getServicesHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/get_services"
	getStatsHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/get_stats"
	updateStatusHandler "github.com/guelfi/barbershop-booking/internal/api/handlers/update_appointment_status"
	"github.com/guelfi/barbershop-booking/internal/api/middleware"
	"github.com/guelfi/barbershop-booking/internal/config"
	"github.com/guelfi/barbershop-booking/internal/domain"
	appointmentRepo "github.com/guelfi/barbershop-booking/internal/infra/storage/appointment"
	"github.com/guelfi/barbershop-booking/internal/service/abuseguard"
	appointmentsService "github.com/guelfi/barbershop-booking/internal/service/appointments"
	createAppointmentUC "github.com/guelfi/barbershop-booking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/guelfi/barbershop-booking/internal/usecase/get_available_slots"
	"github.com/guelfi/barbershop-booking/pkg/dbmetrics"
	"github.com/guelfi/barbershop-booking/pkg/logger"
	"github.com/guelfi/barbershop-booking/pkg/metrics"
	"github.com/guelfi/barbershop-booking/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting barbershop-booking...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Repository and transaction manager, instrumented when metrics are on
	var (
		repository *appointmentRepo.Repository
		txMgr      *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		repository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		repository = appointmentRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(txmanager.FromSQL(db))
	}

	// Abuse guard: redis-backed limiter when configured, in-process otherwise
	guardCfg := abuseguard.Config{
		MaxAttempts:    cfg.Booking.MaxAttemptsPerWindow,
		AttemptWindow:  time.Duration(cfg.Booking.AttemptWindowMinutes) * time.Minute,
		MaxPerPhone:    cfg.Booking.MaxConfirmedPerPhone,
		PhoneQuotaDays: cfg.Booking.PhoneQuotaWindowDays,
	}
	if guardCfg.MaxAttempts == 0 {
		guardCfg.MaxAttempts = domain.MaxBookingAttemptsPerWindow
		guardCfg.AttemptWindow = domain.BookingAttemptWindowMinutes * time.Minute
	}
	if guardCfg.MaxPerPhone == 0 {
		guardCfg.MaxPerPhone = domain.MaxConfirmedPerPhone
		guardCfg.PhoneQuotaDays = domain.PhoneQuotaWindowDays
	}

	var limiter abuseguard.AttemptLimiter
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		limiter = abuseguard.NewRedisLimiter(rdb, guardCfg.MaxAttempts, guardCfg.AttemptWindow, "booking_attempts")
		log.Info("Redis rate limiter enabled (addr=%s)", cfg.Redis.Addr)
	} else {
		limiter = abuseguard.NewSlidingWindowLimiter(guardCfg.MaxAttempts, guardCfg.AttemptWindow)
		log.Info("In-process rate limiter enabled")
	}
	guard := abuseguard.NewGuard(guardCfg, limiter, repository, log)

	// Calendar rules and service catalog
	schedule, err := cfg.Schedule.ToDomainSchedule()
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	catalog := domain.DefaultServiceCatalog()

	// Services and usecases
	appointmentsSvc := appointmentsService.NewService(repository, log)
	createUseCase := createAppointmentUC.NewUseCase(repository, guard, txMgr, catalog, schedule, log)
	slotsUseCase := getAvailableSlotsUC.NewUseCase(repository, schedule, log)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotsUseCase, log)
	getAppointmentsByPhone := getAppointmentsByPhoneHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getServices := getServicesHandler.NewHandler(catalog, log)
	getSchedule := getScheduleHandler.NewHandler(schedule, log)
	getStats := getStatsHandler.NewHandler(appointmentsSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Token-gated routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Booking.Token))

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", getAppointmentsByPhone.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/status", updateStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
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
