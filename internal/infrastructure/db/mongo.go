package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

var (
	errMongoURIIsEmpty = errors.New("mongo uri is empty")
	errMongoInit       = errors.New("mongo init error")
)

// NewMongo подключается к MongoDB и проверяет соединение.
// Клиент живёт всё время работы процесса, закрывает его вызывающая сторона
func NewMongo(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Client, error) {
	if uri == "" {
		return nil, errMongoURIIsEmpty
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(mongoConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errMongoInit, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %w", errMongoInit, err)
	}

	logger.Debug("mongo connection established")
	return client, nil
}
