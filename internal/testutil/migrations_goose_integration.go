//go:build integration

package testutil

import (
	"context"
	"fmt"

	pgrepo "github.com/Gunvolt24/wc_bronze_sync/internal/repo/postgres"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// ApplyMigrationsGoose — накатывает вшитые миграции из migrations/ тем же путём, что и сервис.
func ApplyMigrationsGoose(dsn string) error {
	if err := pgrepo.Migrate(context.Background(), dsn, nopLogger{}); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
