// Пакет bronze — преобразование ответов API магазина в строки bronze-слоя.
// Функции чистые: без ввода-вывода, результат зависит только от входа.
package bronze

import (
	"encoding/json"
	"strings"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// AttributionPrefix — префикс ключей атрибуции заказа (источник, utm_*, тип сессии).
const AttributionPrefix = "_wc_order_attribution_"

// ExtractAttribution — плоская карта атрибуции без префикса.
// Строковые значения остаются строками, прочие JSON-значения декодируются как есть.
// Никогда не падает: нераспознанное значение сохраняется сырой строкой.
func ExtractAttribution(meta []domain.MetaData) map[string]any {
	out := make(map[string]any)
	for i := range meta {
		key, ok := strings.CutPrefix(meta[i].Key, AttributionPrefix)
		if !ok || key == "" {
			continue
		}
		out[key] = decodeMetaValue(meta[i].Value)
	}
	return out
}

// decodeMetaValue — значение мешка метаданных в Go-тип.
func decodeMetaValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
