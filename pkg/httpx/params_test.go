package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/sync/status?"+rawQuery, http.NoBody)
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v, lo, hi, want int
	}{
		{0, 1, 30, 1},
		{31, 1, 30, 30},
		{14, 1, 30, 14},
		{365, 1, 365, 365},
	}
	for _, tt := range tests {
		if got := httpx.ClampInt(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Fatalf("ClampInt(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestParseLimitOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		rawQuery               string
		defaultLimit, maxLimit int
		wantLimit, wantOffset  int
	}{
		{"defaults", "", 100, 1000, 100, 0},
		{"default_above_max", "", 100, 50, 50, 0},
		{"default_zero", "", 0, 50, 1, 0},
		{"both", "limit=25&offset=10", 100, 1000, 25, 10},
		{"limit_zero_clamped", "limit=0", 100, 1000, 1, 0},
		{"limit_above_max", "limit=5000", 100, 1000, 1000, 0},
		{"limit_not_int", "limit=all", 100, 1000, 100, 0},
		{"offset_not_int", "offset=x", 100, 1000, 100, 0},
		{"offset_negative", "limit=10&offset=-3", 100, 1000, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			limit, offset := httpx.ParseLimitOffset(ctxWithQuery(tt.rawQuery), tt.defaultLimit, tt.maxLimit)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("got limit=%d offset=%d, want %d/%d (query=%q)",
					limit, offset, tt.wantLimit, tt.wantOffset, tt.rawQuery)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d"}

	if got := httpx.Paginate(items, 2, 1); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("middle page: %v", got)
	}
	if got := httpx.Paginate(items, 10, 3); len(got) != 1 || got[0] != "d" {
		t.Fatalf("tail page: %v", got)
	}
	if got := httpx.Paginate(items, 2, 4); got == nil || len(got) != 0 {
		t.Fatalf("past end must be empty non-nil, got %#v", got)
	}
	if got := httpx.Paginate([]string(nil), 5, 0); got == nil || len(got) != 0 {
		t.Fatalf("nil input must give empty non-nil, got %#v", got)
	}
}
