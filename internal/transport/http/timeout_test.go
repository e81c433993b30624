package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wc_bronze_sync/internal/commerce"
	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/lock"
	"github.com/Gunvolt24/wc_bronze_sync/internal/repo/memory"
	"github.com/Gunvolt24/wc_bronze_sync/internal/testutil"
	rest "github.com/Gunvolt24/wc_bronze_sync/internal/transport/http"
	"github.com/Gunvolt24/wc_bronze_sync/internal/usecase"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/validate"
)

// Истёкший бюджет вызова не превращается в 500: каждый аккаунт падает сам,
// ответ — 200 с отчётом, статусы записаны.
func TestSync_InvocationTimeout_ReportsTenantErrors(t *testing.T) {
	shop := testutil.NewFakeShop()
	defer shop.Close()
	shop.AddOrders(testutil.MakeShopOrder(1, time.Now().Add(-time.Hour), 1))

	tenants := []domain.TenantConfig{shop.Tenant("a"), shop.Tenant("b"), shop.Tenant("c")}
	statuses := memory.NewStatusStore()
	sink := memory.NewBronzeStore()

	client := commerce.NewClient(commerce.DefaultLimits(), 5*time.Second, noopLogger{})
	writer := usecase.NewUpsertWriter(sink, noopLogger{}, 0)
	runner := usecase.NewTenantRunner(client, writer, statuses, lock.NewLocalLocker(), noopLogger{})
	orch := usecase.NewOrchestrator(memory.NewTenantSource(tenants), validate.NewTenantValidator(), runner, statuses, noopLogger{})

	// бюджет в 1нс истекает раньше первого запроса к магазину
	h := rest.NewHandler(orch, rest.NewAuthenticator("", testCronSecret), noopLogger{}, time.Nanosecond)
	r := rest.NewRouter(h, "")

	req := httptest.NewRequest(http.MethodPost, "/sync", http.NoBody)
	req.Header.Set(rest.HeaderCronSecret, testCronSecret)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report domain.SyncReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Equal(t, 3, report.AccountsProcessed)
	require.Len(t, report.Results, 3)
	for _, res := range report.Results {
		require.Equal(t, domain.SyncStateError, res.Status, res.Account)
		require.NotEmpty(t, res.Error)
	}
	require.Equal(t, 3, report.FailedAccounts())

	saved, err := statuses.ListStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 3)
	for _, st := range saved {
		require.Equal(t, domain.SyncStateError, st.LastSyncStatus)
	}
	require.Zero(t, shop.Requests())
}
