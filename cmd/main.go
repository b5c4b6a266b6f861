package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CheckinService/internal/api"
	checkAvailabilityHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_booking"
	getBookingQRHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_booking_qr"
	getFormHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_form"
	getSettingsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_settings"
	getStatsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_stats"
	listBookingsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/list_bookings"
	loginHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/login"
	updateSettingsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/update_settings"
	verifyBookingHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/verify_booking"
	"github.com/m04kA/SMC-CheckinService/internal/api/middleware"
	"github.com/m04kA/SMC-CheckinService/internal/config"
	"github.com/m04kA/SMC-CheckinService/internal/integrations/notifier"
	adminService "github.com/m04kA/SMC-CheckinService/internal/service/admin"
	bookingsService "github.com/m04kA/SMC-CheckinService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-CheckinService/internal/service/settings"
	checkAvailabilityUC "github.com/m04kA/SMC-CheckinService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CheckinService/internal/usecase/create_booking"
	verifyBookingUC "github.com/m04kA/SMC-CheckinService/internal/usecase/verify_booking"
	"github.com/m04kA/SMC-CheckinService/pkg/auth"
	"github.com/m04kA/SMC-CheckinService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CheckinService/pkg/logger"
	"github.com/m04kA/SMC-CheckinService/pkg/metrics"
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

	log.Info("Starting SMC-CheckinService...")
	log.Info("Configuration loaded (storage=%s, notifier=%s)", cfg.Storage.Driver, cfg.Notifier.Driver)

	if err := run(cfg, log); err != nil {
		log.Error("Service stopped with error: %v", err)
		log.Close()
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Booking.Location()
	if err != nil {
		return err
	}

	// Метрики (если включены). Интерфейсы остаются nil, чтобы потребители подставили no-op
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
		httpMetrics      middleware.HTTPMetrics
		bookingMetrics   createBookingUC.MetricsRecorder
		verifyMetrics    verifyBookingUC.MetricsRecorder
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		dbCollector = metricsCollector
		httpMetrics = metricsCollector
		bookingMetrics = metricsCollector
		verifyMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	st, err := openStorage(ctx, cfg, dbCollector, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer st.close()

	// Отправка подтверждений
	var confirmations createBookingUC.Notifier
	switch cfg.Notifier.Driver {
	case config.NotifierDriverEmailJS:
		confirmations = notifier.NewClient(notifier.Config{
			URL:           cfg.Notifier.URL,
			ServiceID:     cfg.Notifier.ServiceID,
			TemplateID:    cfg.Notifier.TemplateID,
			PublicKey:     cfg.Notifier.PublicKey,
			PrivateKey:    cfg.Notifier.PrivateKey,
			PublicBaseURL: cfg.Notifier.PublicBaseURL,
			Timeout:       time.Duration(cfg.Notifier.Timeout) * time.Second,
			Location:      location,
		}, log)
		log.Info("EmailJS notifier initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	default:
		confirmations = notifier.NewLogNotifier(cfg.Notifier.PublicBaseURL, location, log)
		log.Info("Confirmations are written to the log only")
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(st.settings, cfg.Booking.DefaultSettings(), log)
	bookingSvc := bookingsService.NewService(st.bookings, location, log)
	adminSvc := adminService.NewService(cfg.Auth.AdminEmail, cfg.Auth.AdminPasswordHash, issuer, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(st.bookings, settingsSvc, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		st.bookings,
		checkAvailabilityUseCase,
		settingsSvc,
		confirmations,
		bookingMetrics,
		location,
		log,
	)
	verifyBookingUseCase := verifyBookingUC.NewUseCase(st.bookings, verifyMetrics, log)

	// Настраиваем роутер
	opts := api.Options{
		TokenParser: issuer,
		Logger:      log,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = httpMetrics
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
	}

	router := api.NewRouter(api.Handlers{
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, cfg.Notifier.PublicBaseURL, log).Handle,
		CheckAvailability: checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, location, log).Handle,
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log).Handle,
		GetBookingQR:      getBookingQRHandler.NewHandler(bookingSvc, log).Handle,
		GetForm:           getFormHandler.NewHandler(settingsSvc, log).Handle,
		Login:             loginHandler.NewHandler(adminSvc, log).Handle,
		VerifyBooking:     verifyBookingHandler.NewHandler(verifyBookingUseCase, log).Handle,
		ListBookings:      listBookingsHandler.NewHandler(bookingSvc, log).Handle,
		GetStats:          getStatsHandler.NewHandler(bookingSvc, log).Handle,
		GetSettings:       getSettingsHandler.NewHandler(settingsSvc, log).Handle,
		UpdateSettings:    updateSettingsHandler.NewHandler(settingsSvc, log).Handle,
	}, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// Graceful shutdown по сигналу или при падении сервера
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
