package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewDatabase_EmptyURL(t *testing.T) {
	pool, err := NewDatabase(context.Background(), "", "file://migrations", zap.NewNop())
	assert.ErrorIs(t, err, errDBPathIsEmpty)
	assert.Nil(t, pool)
}

func TestRunMigrations_EmptyURL(t *testing.T) {
	err := RunMigrations("", "file://migrations", zap.NewNop())
	assert.ErrorIs(t, err, errDBPathIsEmpty)
}

func TestNewMongo_EmptyURI(t *testing.T) {
	client, err := NewMongo(context.Background(), "", zap.NewNop())
	assert.ErrorIs(t, err, errMongoURIIsEmpty)
	assert.Nil(t, client)
}

func TestNewMongo_MalformedURI(t *testing.T) {
	client, err := NewMongo(context.Background(), "not-a-mongo-uri", zap.NewNop())
	assert.ErrorIs(t, err, errMongoInit)
	assert.Nil(t, client)
}
