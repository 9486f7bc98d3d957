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

	cancelBookingHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/create_booking"
	findNearbyShopsHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/find_nearby_shops"
	getBookingHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/get_customer_bookings"
	getNotificationsHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/get_notifications"
	getShopBookingsHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/get_shop_bookings"
	markAllNotificationsReadHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/mark_all_notifications_read"
	markNotificationReadHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/mark_notification_read"
	streamNotificationsHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/stream_notifications"
	unreadCountHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/unread_count"
	updateBookingStatusHandler "github.com/motozapp/MotoZapp-BookingService/internal/api/handlers/update_booking_status"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
	"github.com/motozapp/MotoZapp-BookingService/internal/config"
	"github.com/motozapp/MotoZapp-BookingService/internal/infra/feed"
	bookingRepo "github.com/motozapp/MotoZapp-BookingService/internal/infra/storage/booking"
	notificationRepo "github.com/motozapp/MotoZapp-BookingService/internal/infra/storage/notification"
	identityServiceClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/identityservice"
	shopServiceClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
	bookingsService "github.com/motozapp/MotoZapp-BookingService/internal/service/bookings"
	notificationsService "github.com/motozapp/MotoZapp-BookingService/internal/service/notifications"
	createBookingUC "github.com/motozapp/MotoZapp-BookingService/internal/usecase/create_booking"
	findNearbyShopsUC "github.com/motozapp/MotoZapp-BookingService/internal/usecase/find_nearby_shops"
	updateBookingStatusUC "github.com/motozapp/MotoZapp-BookingService/internal/usecase/update_booking_status"
	"github.com/motozapp/MotoZapp-BookingService/pkg/dbmetrics"
	"github.com/motozapp/MotoZapp-BookingService/pkg/logger"
	"github.com/motozapp/MotoZapp-BookingService/pkg/metrics"
	"github.com/motozapp/MotoZapp-BookingService/pkg/simpletxmanager"
	"github.com/motozapp/MotoZapp-BookingService/pkg/txmanager"
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

	log.Info("Starting MotoZapp-BookingService...")
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
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	shopClient := shopServiceClient.NewClient(
		cfg.ShopService.URL,
		time.Duration(cfg.ShopService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds, ShopService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout, cfg.ShopService.URL, cfg.ShopService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		shopClient,
		log,
	)
	notificationSvc := notificationsService.NewService(
		notificationRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		notificationSvc,
		identityClient,
		shopClient,
		txMgr,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingSvc,
		notificationSvc,
		txMgr,
		log,
	)
	findNearbyShopsUseCase := findNearbyShopsUC.NewUseCase(shopClient, log)

	// Realtime-лента уведомлений: hub + слушатель change-feed
	feedHub := feed.NewHub(cfg.Metrics.ServiceName, metricsCollector, log)
	listenerCtx, stopListener := context.WithCancel(context.Background())
	defer stopListener()

	if cfg.Feed.Enabled {
		feedListener := feed.NewListener(cfg.Database.DSN(), cfg.Feed.Channel, feedHub, log)
		go func() {
			if err := feedListener.Run(listenerCtx); err != nil && listenerCtx.Err() == nil {
				log.Error("Feed listener stopped: %v", err)
			}
		}()
		log.Info("Change-feed listener started on channel %q", cfg.Feed.Channel)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateBookingStatusUseCase, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)
	markAllNotificationsRead := markAllNotificationsReadHandler.NewHandler(notificationSvc, log)
	unreadCount := unreadCountHandler.NewHandler(notificationSvc, log)
	streamNotifications := streamNotificationsHandler.NewHandler(feedHub, log)
	findNearbyShops := findNearbyShopsHandler.NewHandler(findNearbyShopsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(cfg.Metrics.ServiceName, metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск мастерских поблизости
	api.HandleFunc("/shops/nearby", findNearbyShops.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", getNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", unreadCount.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", markAllNotificationsRead.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/stream", streamNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

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

	// Останавливаем слушатель change-feed
	stopListener()

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
