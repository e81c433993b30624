package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports/mocks"
	rest "github.com/Gunvolt24/wc_bronze_sync/internal/transport/http"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
)

const (
	testJWTSecret  = "jwt-secret"
	testCronSecret = "cron-secret"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newRouter(svc *mocks.MockSyncService, jwtSecret, cronSecret string) http.Handler {
	h := rest.NewHandler(svc, rest.NewAuthenticator(jwtSecret, cronSecret), noopLogger{}, time.Second)
	return rest.NewRouter(h, "")
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "scheduler",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func do(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cron() map[string]string { return map[string]string{rest.HeaderCronSecret: testCronSecret} }

func TestSync_CronSecret_OK(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	want := &domain.SyncReport{RunID: "run-1", Message: "synced 1 accounts", AccountsProcessed: 1, Completed: true}
	svc.EXPECT().Run(gomock.Any(), domain.SyncRequest{BackfillDays: 7, AccountID: "shop-a"}).Return(want, nil)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodPost, "/sync", `{"backfill_days":7,"account_id":"shop-a"}`, cron())

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got domain.SyncReport
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.RunID != "run-1" || !got.Completed || got.AccountsProcessed != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}
}

func TestSync_Alias_EmptyBody_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	svc.EXPECT().Run(gomock.Any(), domain.SyncRequest{}).Return(&domain.SyncReport{Completed: true}, nil)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodPost, "/api/sync/bronze", "", cron())

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestSync_FailedTenants_Still200(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	report := &domain.SyncReport{
		Message:           "synced 3 accounts (1 failed)",
		AccountsProcessed: 3,
		Completed:         true,
		Results: []domain.SyncResult{
			{Account: "a", Status: domain.SyncStateSuccess},
			{Account: "b", Status: domain.SyncStateError, Error: "fetching_orders: boom"},
			{Account: "c", Status: domain.SyncStateSuccess},
		},
	}
	svc.EXPECT().Run(gomock.Any(), gomock.Any()).Return(report, nil)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodPost, "/sync", "", cron())

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got domain.SyncReport
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got.Results) != 3 || got.Results[1].Status != domain.SyncStateError {
		t.Fatalf("unexpected results: %+v", got.Results)
	}
}

func TestSync_BearerJWT_OK(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	svc.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.SyncReport{Completed: true}, nil)

	r := newRouter(svc, testJWTSecret, "")
	token := signToken(t, testJWTSecret, jwt.SigningMethodHS256)
	w := do(r, http.MethodPost, "/sync", "", map[string]string{"Authorization": "Bearer " + token})

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestSync_Unauthorized(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
	}{
		{"no credentials", nil},
		{"wrong cron secret", map[string]string{rest.HeaderCronSecret: "nope"}},
		{"jwt with wrong key", map[string]string{"Authorization": "Bearer " + signToken(t, "other", jwt.SigningMethodHS256)}},
		{"jwt with other alg", map[string]string{"Authorization": "Bearer " + signToken(t, testJWTSecret, jwt.SigningMethodHS512)}},
		{"not a bearer", map[string]string{"Authorization": "Basic Zm9vOmJhcg=="}},
		{"garbage token", map[string]string{"Authorization": "Bearer abc.def.ghi"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockSyncService(ctrl) // Run не вызывается

			r := newRouter(svc, testJWTSecret, testCronSecret)
			w := do(r, http.MethodPost, "/sync", "", tc.headers)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("want 401, got %d, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestSync_ExpiredJWT_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	raw, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	r := newRouter(svc, testJWTSecret, "")
	w := do(r, http.MethodPost, "/sync", "", map[string]string{"Authorization": "Bearer " + raw})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestSync_NotConfigured_500(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	r := newRouter(svc, "", "")
	w := do(r, http.MethodPost, "/sync", "", cron())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "sync trigger is not configured") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSync_MalformedJSON_400(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodPost, "/sync", `{"backfill_days":`, cron())

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestSync_InvalidRequest_400(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	svc.EXPECT().Run(gomock.Any(), domain.SyncRequest{StartDate: "yesterday"}).
		Return(nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidRequest, "yesterday"))

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodPost, "/sync", `{"start_date":"yesterday"}`, cron())

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestSync_TenantStoreDown_500(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	svc.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: connection refused", domain.ErrTenantStore))

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodPost, "/sync", "", cron())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestSync_InvocationTimeout_PassedToService(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	svc.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.SyncRequest) (*domain.SyncReport, error) {
			deadline, ok := ctx.Deadline()
			if !ok || time.Until(deadline) > time.Second {
				t.Fatalf("want deadline within 1s, got %v (ok=%v)", deadline, ok)
			}
			return &domain.SyncReport{Completed: true}, nil
		})

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodPost, "/sync", "", cron())
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestStatus_OK_Paged(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	statuses := []domain.SyncStatus{
		{TenantID: "a", LastSyncStatus: domain.SyncStateSuccess, LastSyncOrdersCount: 3},
		{TenantID: "b", LastSyncStatus: domain.SyncStateError, LastErrorMessage: "boom"},
		{TenantID: "c", LastSyncStatus: domain.SyncStateSuccess},
	}
	svc.EXPECT().Statuses(gomock.Any()).Return(statuses, nil)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodGet, "/sync/status?limit=1&offset=1", "", cron())

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Total    int                 `json:"total"`
		Statuses []domain.SyncStatus `json:"statuses"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Total != 3 || len(got.Statuses) != 1 || got.Statuses[0].TenantID != "b" {
		t.Fatalf("unexpected page: %+v", got)
	}
}

func TestStatus_OffsetPastEnd_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	svc.EXPECT().Statuses(gomock.Any()).Return([]domain.SyncStatus{{TenantID: "a"}}, nil)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodGet, "/sync/status?offset=10", "", cron())

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"statuses":[]`) {
		t.Fatalf("want empty page, got %s", w.Body.String())
	}
}

func TestStatus_Error_500(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	svc.EXPECT().Statuses(gomock.Any()).Return(nil, errors.New("db error"))

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodGet, "/sync/status", "", cron())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
}

func TestStatus_RequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodGet, "/sync/status", "", nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestNoRoute_404(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodGet, "/no-such-route", "", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestMethodNotAllowed_405(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	r := newRouter(svc, "", testCronSecret)
	w := do(r, http.MethodGet, "/sync", "", nil)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d, body=%s", w.Code, w.Body.String())
	}
	if allow := w.Header().Get("Allow"); allow != "POST" {
		t.Fatalf("want Allow: POST, got %q", allow)
	}
}

func TestPing_200(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	w := do(newRouter(svc, "", ""), http.MethodGet, "/ping", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestMetrics_200(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	w := do(newRouter(svc, "", ""), http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	// Содержимое может меняться — достаточно проверить, что не пусто.
	if w.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
}

func TestSync_JWTIssuer(t *testing.T) {
	sign := func(iss string) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: iss}).
			SignedString([]byte(testJWTSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return raw
	}

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)
	svc.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.SyncReport{Completed: true}, nil).Times(1)

	auth := rest.NewAuthenticator(testJWTSecret, "").WithIssuer("scheduler")
	r := rest.NewRouter(rest.NewHandler(svc, auth, noopLogger{}, 0), "")

	if w := do(r, http.MethodPost, "/sync", "", map[string]string{"Authorization": "Bearer " + sign("scheduler")}); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/sync", "", map[string]string{"Authorization": "Bearer " + sign("someone")}); w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestMetrics_Disabled_404(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSyncService(ctrl)

	h := rest.NewHandler(svc, rest.NewAuthenticator("", ""), noopLogger{}, 0).WithMetricsPath("")
	w := do(rest.NewRouter(h, ""), http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}
