package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/tomato/backend/config"
	"github.com/pageza/tomato/backend/internal/logging"
	"github.com/pageza/tomato/backend/internal/model"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "tomato.db"),
	}

	db, err := New(cfg, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db), "migrations are repeatable")

	assert.True(t, db.Migrator().HasTable(&model.Recipe{}))
	assert.True(t, db.Migrator().HasTable(&model.Review{}))
	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "mysql"}, logging.Discard())
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}

func TestHealthCheckReportsPingFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	assert.ErrorContains(t, HealthCheck(context.Background(), db), "connection reset")
}

func TestOpenPostgresUnreachable(t *testing.T) {
	cfg := &config.Config{
		DBDriver:  config.DriverPostgres,
		DBHost:    "127.0.0.1",
		DBPort:    "1",
		DBUser:    "postgres",
		DBName:    "tomato",
		DBSSLMode: "disable",
	}
	_, err := OpenPostgres(cfg, logging.Discard())
	assert.ErrorContains(t, err, "error connecting to the database")
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "://bad"}, logging.Discard())
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}
