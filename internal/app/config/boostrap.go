package config

import (
	"context"
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	PostgresDB     *sql.DB
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Logger         *zap.Logger
	DriverConfig   *DriverConfig
	InternalConfig *InternalConfig
	// Stop funcs called during Shutdown to halt background workers.
	DeadlineSweeperStop func()
	SlotGeneratorStop   func()
	BusStop             func()
	ConsumerStop        func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.SlotGeneratorStop != nil {
		b.SlotGeneratorStop()
		log.Println("Successfully stopped slot generator")
	}

	if b.DeadlineSweeperStop != nil {
		b.DeadlineSweeperStop()
		log.Println("Successfully stopped deadline sweeper")
	}

	if b.ConsumerStop != nil {
		b.ConsumerStop()
		log.Println("Successfully stopped broker consumer")
	}

	if b.BusStop != nil {
		b.BusStop()
		log.Println("Successfully drained local bus")
	}

	if b.RabbitMQ != nil {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	if b.PostgresDB != nil {
		if err := b.PostgresDB.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing Postgres")
	}

	if b.Logger != nil {
		if err := b.Logger.Sync(); err != nil {
			return err
		}
		log.Println("Successfully closing Logger")
	}

	return nil
}
