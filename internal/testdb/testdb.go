// Package testdb sobe um Postgres descartável (dockertest) para testes de
// repositório. Sem Docker disponível, os testes que dependem dele são
// pulados em vez de falhar.
package testdb

import (
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Abrir sobe um container Postgres e devolve a conexão gorm. O container
// é destruído no Cleanup do teste.
func Abrir(tb testing.TB) *gorm.DB {
	tb.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		tb.Skipf("docker indisponível: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		tb.Skipf("docker indisponível: %v", err)
	}

	resource, err := pool.Run("postgres", "16", []string{
		"POSTGRES_USER=test",
		"POSTGRES_PASSWORD=test",
		"POSTGRES_DB=testdb",
	})
	if err != nil {
		tb.Fatalf("não foi possível subir o postgres: %v", err)
	}
	tb.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf(
		"host=localhost user=test password=test dbname=testdb port=%s sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}
		sqlDB, pingErr := db.DB()
		if pingErr != nil {
			return pingErr
		}
		return sqlDB.Ping()
	})
	if err != nil {
		tb.Fatalf("postgres não respondeu: %v", err)
	}

	return db
}
