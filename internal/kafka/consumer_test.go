package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/kafka/mocks"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// consumerFixture — Consumer поверх моков reader и обработчика.
type consumerFixture struct {
	reader  *mocks.Mockreader
	handler *mocks.MockmessageHandler
	c       *Consumer
}

func newFixture(t *testing.T) *consumerFixture {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(kafka.ReaderConfig{
		Topic: "bronze-sync-triggers", GroupID: "g1", Brokers: []string{"b:9092"},
	}).AnyTimes()

	return &consumerFixture{
		reader:  r,
		handler: h,
		c: &Consumer{
			reader: r, handler: h, log: nopLogger{},
			processTimeout: 30 * time.Millisecond,
			retry:          newBackoff(5*time.Millisecond, 10*time.Millisecond, 1),
		},
	}
}

// deliver — одно сообщение, после которого следующий fetch блокируется до отмены.
func (f *consumerFixture) deliver(msg kafka.Message) {
	gomock.InOrder(
		f.reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		f.reader.EXPECT().FetchMessage(gomock.Any()).
			DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
				<-ctx.Done()
				return kafka.Message{}, ctx.Err()
			}).AnyTimes(),
	)
}

// runFor — крутит Run заданное время и проверяет штатный выход по отмене.
func (f *consumerFixture) runFor(t *testing.T, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.c.Run(ctx) }()

	time.Sleep(d)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

func TestRun_CommitsOnOutcome(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		result error
	}{
		{"handled", "{}", nil},
		{"malformed json", "bad", ErrInvalidMessage},
		{"invalid request", `{"start_date":"tomorrow"}`, domain.ErrInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			msg := kafka.Message{Offset: 7, Value: []byte(tc.value)}

			f.deliver(msg)
			f.handler.EXPECT().HandleMessage(gomock.Any(), []byte(tc.value)).Return(tc.result)
			f.reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)

			f.runFor(t, 20*time.Millisecond)
		})
	}
}

// Временная ошибка: оффсет не коммитится, то же сообщение обрабатывается снова.
func TestRun_TransientFailure_NoCommit(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 2, Value: []byte("x")}, nil)
	f.handler.EXPECT().HandleMessage(gomock.Any(), []byte("x")).Return(domain.ErrTenantStore).MinTimes(2)
	// CommitMessages не ожидается: лишний вызов уронит тест.

	f.runFor(t, 40*time.Millisecond)
}

func TestRun_TransientFailure_ThenCommit(t *testing.T) {
	f := newFixture(t)
	msg := kafka.Message{Offset: 4, Value: []byte("{}")}

	f.deliver(msg)
	gomock.InOrder(
		f.handler.EXPECT().HandleMessage(gomock.Any(), msg.Value).Return(context.DeadlineExceeded),
		f.handler.EXPECT().HandleMessage(gomock.Any(), msg.Value).Return(nil),
		f.reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil),
	)

	f.runFor(t, 40*time.Millisecond)
}

// Обработчик получает контекст с processTimeout.
func TestRun_HandlerGetsDeadline(t *testing.T) {
	f := newFixture(t)
	msg := kafka.Message{Offset: 5, Value: []byte("{}")}

	f.deliver(msg)
	f.handler.EXPECT().HandleMessage(gomock.Any(), msg.Value).
		DoAndReturn(func(ctx context.Context, _ []byte) error {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			require.WithinDuration(t, time.Now().Add(30*time.Millisecond), deadline, 30*time.Millisecond)
			return nil
		})
	f.reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)

	f.runFor(t, 20*time.Millisecond)
}

// Ошибка коммита только логируется; цикл продолжает работу.
func TestRun_CommitErrorIsNotFatal(t *testing.T) {
	f := newFixture(t)
	msg := kafka.Message{Offset: 3, Value: []byte("{}")}

	f.deliver(msg)
	f.handler.EXPECT().HandleMessage(gomock.Any(), msg.Value).Return(nil)
	f.reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(errors.New("coordinator moved"))

	f.runFor(t, 20*time.Millisecond)
}

func TestRun_FetchErrorRetriesUntilDeadline(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{}, errors.New("broker error")).MinTimes(2)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, f.c.Run(ctx), context.DeadlineExceeded)
}

func TestClose_DelegatesOnce(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().Close().Return(nil).Times(1)

	require.NoError(t, f.c.Close())
	require.NoError(t, f.c.Close())
}

func TestBackoff_GrowsAndResets(t *testing.T) {
	b := newBackoff(100*time.Millisecond, 300*time.Millisecond, 7)

	for i, base := range []time.Duration{100, 200, 300, 300} {
		base *= time.Millisecond
		d := b.next()
		require.GreaterOrEqual(t, d, base/2, "step %d", i)
		require.LessOrEqual(t, d, base, "step %d", i)
	}

	b.reset()
	require.LessOrEqual(t, b.next(), 100*time.Millisecond)
}

func TestWait_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.False(t, wait(ctx, time.Hour))
	require.True(t, wait(context.Background(), time.Millisecond))
}
