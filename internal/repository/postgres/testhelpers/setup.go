package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sportsfield-microservice/internal/config"
	"go.uber.org/zap"
)

const connectAttempts = 3

// TestDB - соединение с тестовой базой PostGIS
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой базе PostGIS (TEST_DB_* переменные).
// Тест пропускается, если база или расширение недоступны.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	port, err := strconv.Atoi(getEnv("TEST_DB_PORT", "5433"))
	if err != nil {
		t.Fatalf("invalid TEST_DB_PORT: %v", err)
	}

	cfg := config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnv("TEST_DB_NAME", "sportsfields_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	db, err := connectWithRetry(t, cfg.DSN())
	if err != nil {
		t.Skipf("PostgreSQL not available for integration tests: %v", err)
	}

	var version string
	if err := db.Get(&version, "SELECT PostGIS_Version()"); err != nil {
		_ = db.Close()
		t.Skipf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s", version)

	return &TestDB{DB: db, Logger: zap.NewNop()}
}

func connectWithRetry(t *testing.T, dsn string) (*sqlx.DB, error) {
	delay := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}
		lastErr = err

		if attempt < connectAttempts {
			t.Logf("database not ready (attempt %d/%d), retrying in %v", attempt, connectAttempts, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	return nil, lastErr
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup очищает таблицу полей
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	if _, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE sports_fields"); err != nil {
		return fmt.Errorf("truncate sports_fields: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
