package config

type (
	InternalConfig struct {
		App            App
		Booking        Booking
		Verification   Verification
		SlotGeneration SlotGeneration
		Queues         Queues
	}

	DriverConfig struct {
		PostgresDB PostgresDB
		Redis      Redis
		RabbitMQ   RabbitMQ
		Logger     Logger
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		EndpointPrefix            string
		PublicBaseURL             string
		SuperadminAPIKey          string
		MaxRequests               int
		ShutdownTimeout           int
		MaxTimeRequestsPerSeconds int
	}

	Booking struct {
		TimeoutInSeconds        int
		CommandTimeoutInSeconds int
	}

	Verification struct {
		TimeoutInSeconds int
	}

	SlotGeneration struct {
		CronSpec           string
		WeeksAhead         int
		DefaultMaxQuantity int
	}

	Queues struct {
		PatientCommandQueue      string
		AppointmentCommandQueue  string
		NotificationCommandQueue string
		IntegrationEventQueue    string
		InboundEventQueue        string
		ConsumerPrefetch         int
	}

	PostgresDB struct {
		Host     string
		Port     string
		DBName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
