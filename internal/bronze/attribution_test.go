package bronze_test

import (
	"encoding/json"
	"testing"

	"github.com/Gunvolt24/wc_bronze_sync/internal/bronze"
	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/stretchr/testify/require"
)

func meta(key string, value string) domain.MetaData {
	return domain.MetaData{Key: key, Value: json.RawMessage(value)}
}

func TestExtractAttribution(t *testing.T) {
	t.Parallel()

	got := bronze.ExtractAttribution([]domain.MetaData{
		meta("_wc_order_attribution_source_type", `"utm"`),
		meta("_wc_order_attribution_utm_source", `"google"`),
		meta("_wc_order_attribution_session_pages", `3`),
		meta("_wc_order_attribution_flags", `{"mobile":true}`),
		meta("_billing_phone", `"+100"`),
		meta("is_vat_exempt", `"no"`),
		meta("_wc_order_attribution_", `"empty-key"`),
	})

	require.Equal(t, map[string]any{
		"source_type":   "utm",
		"utm_source":    "google",
		"session_pages": float64(3),
		"flags":         map[string]any{"mobile": true},
	}, got)
}

func TestExtractAttribution_EmptyAndBroken(t *testing.T) {
	t.Parallel()

	require.Empty(t, bronze.ExtractAttribution(nil))
	require.Empty(t, bronze.ExtractAttribution([]domain.MetaData{}))

	// сырой мусор не роняет извлечение
	got := bronze.ExtractAttribution([]domain.MetaData{meta("_wc_order_attribution_referrer", `not-json`)})
	require.Equal(t, "not-json", got["referrer"])

	got = bronze.ExtractAttribution([]domain.MetaData{{Key: "_wc_order_attribution_device_type"}})
	require.Contains(t, got, "device_type")
	require.Nil(t, got["device_type"])
}
