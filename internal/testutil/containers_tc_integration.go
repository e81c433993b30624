//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	pgrepo "github.com/Gunvolt24/wc_bronze_sync/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycleHooks — одна строка лога на каждый этап контейнера.
func lifecycleHooks(l *log.Logger) tc.ContainerLifecycleHooks {
	stage := func(name string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			l.Printf("%s id=%s", name, id)
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("creating image=%s", req.Image)
				return nil
			},
		},
		PostStarts:     []tc.ContainerHook{stage("started")},
		PostReadies:    []tc.ContainerHook{stage("ready")},
		PostTerminates: []tc.ContainerHook{stage("terminated")},
	}
}

// PGContainer — Postgres для bronze-таблиц; Pool собран тем же NewPool, что и в сервисе.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := postgres.Run(
		ctx,
		postgresImage,
		tc.WithLifecycleHooks(lifecycleHooks(tcLogger)),
		postgres.WithDatabase("bronze"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				// initdb перезапускает сервер: сообщение появляется дважды
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, fmt.Errorf("conn string: %w", err)
	}

	pool, err := pgrepo.NewPool(ctx, dsn, 5)
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, err
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &PGContainer{Container: pg, DSN: dsn, Pool: pool}, stop, nil
}

// KafkaEnv — Redpanda (Kafka API) для триггеров и отчётов.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		redpandaImage,
		tc.WithLifecycleHooks(lifecycleHooks(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}
