package config

import (
	"clinic-booking-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "booking"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			PublicBaseURL:             utils.GetEnvString("APP_PUBLIC_BASE_URL", "http://localhost:8080"),
			SuperadminAPIKey:          utils.GetEnvString("APP_SUPERADMIN_API_KEY", ""),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 1),
		},
		Booking: Booking{
			TimeoutInSeconds:        utils.GetEnvInt("BOOKING_TIMEOUT_IN_SECONDS", 30),
			CommandTimeoutInSeconds: utils.GetEnvInt("BOOKING_COMMAND_TIMEOUT_IN_SECONDS", 10),
		},
		Verification: Verification{
			TimeoutInSeconds: utils.GetEnvInt("VERIFICATION_TIMEOUT_IN_SECONDS", 600),
		},
		SlotGeneration: SlotGeneration{
			CronSpec:           utils.GetEnvString("SLOT_GENERATION_CRON_SPEC", "0 0 * * *"),
			WeeksAhead:         utils.GetEnvInt("SLOT_GENERATION_WEEKS_AHEAD", 4),
			DefaultMaxQuantity: utils.GetEnvInt("SLOT_GENERATION_DEFAULT_MAX_QUANTITY", 50),
		},
		Queues: Queues{
			PatientCommandQueue:      utils.GetEnvString("RABBITMQ_PATIENT_COMMAND_QUEUE", "patient_service_commands"),
			AppointmentCommandQueue:  utils.GetEnvString("RABBITMQ_APPOINTMENT_COMMAND_QUEUE", "appointment_service_commands"),
			NotificationCommandQueue: utils.GetEnvString("RABBITMQ_NOTIFICATION_COMMAND_QUEUE", "notification_service_commands"),
			IntegrationEventQueue:    utils.GetEnvString("RABBITMQ_INTEGRATION_EVENT_QUEUE", "booking_service_events"),
			InboundEventQueue:        utils.GetEnvString("RABBITMQ_INBOUND_EVENT_QUEUE", "booking_service_inbound"),
			ConsumerPrefetch:         utils.GetEnvInt("RABBITMQ_CONSUMER_PREFETCH", 1),
		},
	}
}
