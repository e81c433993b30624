package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/wc_bronze_sync/config"
	"github.com/Gunvolt24/wc_bronze_sync/internal/app"
	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/logger"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/joho/godotenv"
)

// CLI: полный бэкфилл по протоколу продолжения; отчёт каждого чанка — строкой JSON в stdout.
// Код выхода: 0 — всё синхронизировано, 1 — ошибка запуска, 2 — часть аккаунтов упала.
func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load(".env.local")

	tenantsPath := flag.String("tenants", "", "tenants file (.json or .jsonl); empty — tenant_accounts in Postgres")
	sqlitePath := flag.String("sqlite", "", "write to SQLite file instead of Postgres")
	inMemory := flag.Bool("memory", false, "keep rows in memory (dry run)")
	backfillDays := flag.Int("backfill-days", 0, "days to backfill (default 1)")
	chunkDays := flag.Int("chunk-days", 0, "days per chunk (default 14)")
	startDate := flag.String("start-date", "", "resume from this RFC3339 timestamp")
	accountID := flag.String("account", "", "sync only this account id")
	maxChunks := flag.Int("max-chunks", 100, "stop after this many chunks (0 — no limit)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if *tenantsPath != "" {
		cfg.Sync.TenantsFile = *tenantsPath
	}
	switch {
	case *inMemory:
		cfg.Sync.Sink = app.SinkMemory
	case *sqlitePath != "":
		cfg.Sync.Sink = app.SinkSQLite
		cfg.SQLite.Path = *sqlitePath
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = cleanupLogger() }()

	metrics.MustRegister()

	stack, cleanup, err := app.BuildStack(ctx, &cfg, logg)
	if err != nil {
		logg.Errorf(ctx, "build stack: %v", err)
		return 1
	}
	defer cleanup()

	req := domain.SyncRequest{
		BackfillDays: *backfillDays,
		ChunkDays:    *chunkDays,
		StartDate:    *startDate,
		AccountID:    *accountID,
	}

	enc := json.NewEncoder(os.Stdout)
	final, err := app.RunContinuation(ctx, stack.Service, req, *maxChunks, func(r domain.SyncRequest, report *domain.SyncReport) {
		logg.Infof(ctx, "chunk done start_date=%q processed=%d/%d days failed=%d",
			r.StartDate, report.Progress.ProcessedDays, report.Progress.TotalDays, report.FailedAccounts())
		_ = enc.Encode(report)
	})
	if err != nil {
		logg.Errorf(ctx, "sync: %v", err)
		return 1
	}
	if final.FailedAccounts() > 0 {
		return 2
	}
	return 0
}
