package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/migrations"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"
	"github.com/pressly/goose/v3"
)

// gooseLogger — вывод goose в общий логгер приложения.
type gooseLogger struct {
	ctx context.Context
	log ports.Logger
}

func (l gooseLogger) Printf(format string, args ...any) {
	l.log.Infof(l.ctx, "goose: "+strings.TrimSuffix(format, "\n"), args...)
}

func (l gooseLogger) Fatalf(format string, args ...any) {
	l.log.Errorf(l.ctx, "goose: "+strings.TrimSuffix(format, "\n"), args...)
}

// Migrate — применяет вшитые миграции (bronze_*, tenant_*) к базе по DSN.
func Migrate(ctx context.Context, dsn string, log ports.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{ctx: ctx, log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
