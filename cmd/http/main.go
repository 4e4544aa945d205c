package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/delivery/http/controllers"
	"clinic-booking-service/internal/app/delivery/http/middlewares"
	"clinic-booking-service/internal/app/delivery/http/routers"
	"clinic-booking-service/internal/app/drivers/database"
	"clinic-booking-service/internal/app/drivers/logger"
	"clinic-booking-service/internal/app/drivers/messaging"
	"clinic-booking-service/internal/app/services/core/booking"
	"clinic-booking-service/internal/app/services/core/slot"
	"clinic-booking-service/internal/app/services/core/verification"
	"clinic-booking-service/internal/app/services/shared/bus"
	"clinic-booking-service/internal/app/services/shared/collaborators"
	"clinic-booking-service/internal/app/services/shared/deadline"
	"clinic-booking-service/internal/app/services/shared/locker"
	"clinic-booking-service/internal/app/services/shared/metrics"
	"clinic-booking-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootLog := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(&bootstrap); err != nil {
		bootLog.Fatalf("Failed to bootstrap the application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	bootLog.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootLog.Printf("Error during dependency shutdown: %v", err)
	}

	bootLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx := context.Background()

	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	appMetrics := metrics.New()

	// Local message bus
	messageBus := bus.NewMemoryBus(bootstrap.Logger, appMetrics)
	bootstrap.BusStop = messageBus.Stop

	// Broker bridge to the collaborator services
	queueService, err := bus.NewRabbitMQQueueService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.Queues.ConsumerPrefetch,
	)
	if err != nil {
		return err
	}
	queueClients := collaborators.NewQueueClients(queueService, bootstrap.InternalConfig.Queues, bootstrap.Logger)

	// Deadline scheduler
	deadlineStore := deadline.NewRedisDeadlineStore(redisRepository)
	deadlineScheduler := deadline.NewScheduler(bootstrap.Logger, deadlineStore, messageBus, appMetrics)
	bootstrap.DeadlineSweeperStop = deadlineScheduler.Start(ctx)

	// Slot inventory
	slotEventStore := slot.NewSlotEventPostgresStore(bootstrap.PostgresDB)
	slotViewRepository := slot.NewSlotViewPostgresRepository(bootstrap.PostgresDB)
	medicalPackageRepository := slot.NewMedicalPackagePostgresRepository(bootstrap.PostgresDB)
	slotManager := slot.NewManager(bootstrap.Logger, slotEventStore, messageBus, appMetrics)
	slotManager.RegisterHandlers(messageBus)
	slotProjection := slot.NewProjection(bootstrap.Logger, slotViewRepository)
	slotProjection.Subscribe(messageBus)
	slotUsecase := slot.NewSlotUsecase(messageBus, slotViewRepository, bootstrap.Logger)
	slotController := controllers.NewSlotController(bootstrap.Logger, slotUsecase)

	slotGenerator := slot.NewGenerator(bootstrap.Logger, bootstrap.InternalConfig, lockerService, medicalPackageRepository, messageBus)
	slotGenerator.Start(ctx)
	bootstrap.SlotGeneratorStop = slotGenerator.Stop

	// Email verification
	verificationStore := verification.NewVerificationSagaPostgresStore(bootstrap.PostgresDB)
	verificationSaga := verification.NewSaga(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		verificationStore,
		messageBus,
		deadlineScheduler,
		queueClients,
		appMetrics,
	)
	verificationSaga.RegisterHandlers(messageBus)
	verificationSaga.Subscribe(messageBus)
	verificationUsecase := verification.NewVerificationUsecase(verificationStore, messageBus, bootstrap.Logger)
	verificationController := controllers.NewVerificationController(bootstrap.Logger, verificationUsecase)

	// Booking
	bookingSagaStore := booking.NewBookingSagaPostgresStore(bootstrap.PostgresDB)
	bookingStatusRepository := booking.NewBookingStatusPostgresRepository(bootstrap.PostgresDB)
	bookingSaga := booking.NewSaga(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		bookingSagaStore,
		messageBus,
		messageBus,
		deadlineScheduler,
		queueClients,
		queueClients,
		appMetrics,
	)
	bookingSaga.Subscribe(messageBus)
	bookingStatusProjection := booking.NewStatusProjection(bootstrap.Logger, bookingStatusRepository)
	bookingStatusProjection.Subscribe(messageBus)
	bookingUsecase := booking.NewBookingUsecase(messageBus, bookingStatusRepository, bootstrap.Logger)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase)

	// Booking outcomes are also published to the broker for other services.
	integrationForwarder := bus.NewIntegrationForwarder(
		bootstrap.Logger,
		queueService,
		bootstrap.InternalConfig.Queues.IntegrationEventQueue,
	)
	integrationForwarder.Subscribe(messageBus)

	// Replies from collaborator services arrive on the inbound queue and are
	// republished onto the local bus for the sagas.
	if err := queueService.ConsumeIntoEventBus(bootstrap.InternalConfig.Queues.InboundEventQueue, messageBus); err != nil {
		return err
	}
	bootstrap.ConsumerStop = queueService.Stop

	// HTTP delivery
	httpMiddlewares := middlewares.New(bootstrap.Logger, bootstrap.InternalConfig)
	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		httpMiddlewares,
		bookingController,
		slotController,
		verificationController,
	)

	return nil
}
