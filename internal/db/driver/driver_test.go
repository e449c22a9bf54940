package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/tablefinder/internal/config"
	"github.com/kailas-cloud/tablefinder/internal/db"
	"github.com/kailas-cloud/tablefinder/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/tablefinder/internal/db/redis"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mongo"}, config.StorageConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestOpen_RequiresConnectionSettings(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: config.DriverPostgres}, config.StorageConfig{})
	require.Error(t, err, "postgres requires a dsn")

	_, err = Open(config.DatabaseConfig{Driver: config.DriverRedis}, config.StorageConfig{})
	require.Error(t, err, "redis requires addrs")
}

func TestOpen_Postgres(t *testing.T) {
	s, err := Open(config.DatabaseConfig{
		Driver: config.DriverPostgres,
		DSN:    "postgres://localhost/tablefinder?sslmode=disable",
	}, config.StorageConfig{})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*postgres.Store)
	assert.True(t, ok)
	_, ok = s.(SchemaCreator)
	assert.True(t, ok)
}

func TestEnsureSchema_SkipsStoresWithoutDDL(t *testing.T) {
	var s db.Store = (*dbRedis.Store)(nil)
	assert.NoError(t, EnsureSchema(context.Background(), s))
}

type schemaStore struct {
	db.Store
	err   error
	calls int
}

func (s *schemaStore) CreateSchema(context.Context) error {
	s.calls++
	return s.err
}

func TestEnsureSchema(t *testing.T) {
	s := &schemaStore{}
	require.NoError(t, EnsureSchema(context.Background(), s))
	assert.Equal(t, 1, s.calls)

	s = &schemaStore{err: errors.New("permission denied")}
	err := EnsureSchema(context.Background(), s)
	require.Error(t, err)
	assert.ErrorIs(t, err, s.err)
}
