package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports/mocks"
	"github.com/Gunvolt24/wc_bronze_sync/internal/usecase"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func orderRowsN(n int) []domain.OrderRow {
	rows := make([]domain.OrderRow, n)
	for i := range rows {
		rows[i] = domain.OrderRow{TenantID: "t", OrderID: int64(i + 1)}
	}
	return rows
}

func productRowsN(n int) []domain.ProductRow {
	rows := make([]domain.ProductRow, n)
	for i := range rows {
		rows[i] = domain.ProductRow{TenantID: "t", ProductID: int64(i + 1)}
	}
	return rows
}

func batchLen(n int) gomock.Matcher {
	return gomock.Len(n)
}

func TestWriteOrders_SplitsIntoBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockBronzeSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().UpsertOrderRows(gomock.Any(), batchLen(2)).Return(nil),
		sink.EXPECT().UpsertOrderRows(gomock.Any(), batchLen(2)).Return(nil),
		sink.EXPECT().UpsertOrderRows(gomock.Any(), batchLen(1)).Return(nil),
	)

	w := usecase.NewUpsertWriter(sink, noopLogger{}, 2)
	written, err := w.WriteOrders(context.Background(), orderRowsN(5))
	require.NoError(t, err)
	require.Equal(t, 5, written)
}

// Первый сбойный батч заказов прерывает запись.
func TestWriteOrders_StopsOnFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockBronzeSink(ctrl)
	boom := errors.New("deadlock detected")

	gomock.InOrder(
		sink.EXPECT().UpsertOrderRows(gomock.Any(), gomock.Any()).Return(nil),
		sink.EXPECT().UpsertOrderRows(gomock.Any(), gomock.Any()).Return(boom),
	)

	w := usecase.NewUpsertWriter(sink, noopLogger{}, 2)
	written, err := w.WriteOrders(context.Background(), orderRowsN(6))
	require.Equal(t, 2, written)
	require.ErrorIs(t, err, domain.ErrOrderBatchFailed)
	require.ErrorIs(t, err, boom)
}

func TestWriteOrders_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockBronzeSink(ctrl)

	written, err := usecase.NewUpsertWriter(sink, noopLogger{}, 0).WriteOrders(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, written)
}

// Сбойный батч товаров пропускается, остальные пишутся.
func TestWriteProducts_SkipsFailedBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockBronzeSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().UpsertProductRows(gomock.Any(), batchLen(2)).Return(nil),
		sink.EXPECT().UpsertProductRows(gomock.Any(), batchLen(2)).Return(errors.New("constraint")),
		sink.EXPECT().UpsertProductRows(gomock.Any(), batchLen(1)).Return(nil),
	)

	w := usecase.NewUpsertWriter(sink, noopLogger{}, 2)
	out, err := w.WriteProducts(context.Background(), productRowsN(5))
	require.NoError(t, err)
	require.Equal(t, usecase.ProductWriteOutcome{Written: 3, FailedBatches: 1}, out)
}

func TestWriteProducts_DefaultBatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockBronzeSink(ctrl)

	sink.EXPECT().UpsertProductRows(gomock.Any(), batchLen(usecase.DefaultBatchSize)).Return(nil)
	sink.EXPECT().UpsertProductRows(gomock.Any(), batchLen(1)).Return(nil)

	out, err := usecase.NewUpsertWriter(sink, noopLogger{}, -1).WriteProducts(context.Background(), productRowsN(usecase.DefaultBatchSize+1))
	require.NoError(t, err)
	require.Equal(t, usecase.DefaultBatchSize+1, out.Written)
}

func TestWriteProducts_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockBronzeSink(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := usecase.NewUpsertWriter(sink, noopLogger{}, 2).WriteProducts(ctx, productRowsN(3))
	require.ErrorIs(t, err, context.Canceled)
}
