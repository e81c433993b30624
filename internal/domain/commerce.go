package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Структуры ответа внешнего API (WooCommerce REST wc/v3).
// Берём только поля, нужные bronze-слою; неизвестные поля игнорируются.

// Order — заказ вместе с позициями.
type Order struct {
	ID                 int64        `json:"id"`
	Number             string       `json:"number"`
	Status             string       `json:"status"`
	Currency           string       `json:"currency"`
	DateCreated        APITime      `json:"date_created_gmt"`
	DateModified       APITime      `json:"date_modified_gmt"`
	DatePaid           APITime      `json:"date_paid_gmt"`
	CustomerID         int64        `json:"customer_id"`
	Billing            Billing      `json:"billing"`
	PaymentMethod      string       `json:"payment_method"`
	PaymentMethodTitle string       `json:"payment_method_title"`
	Total              string       `json:"total"`
	TotalTax           string       `json:"total_tax"`
	ShippingTotal      string       `json:"shipping_total"`
	DiscountTotal      string       `json:"discount_total"`
	MetaData           []MetaData   `json:"meta_data"`
	LineItems          []LineItem   `json:"line_items"`
	CouponLines        []CouponLine `json:"coupon_lines"`
	Refunds            []Refund     `json:"refunds"`
}

// Billing — платёжные данные покупателя (нужен только email и страна).
type Billing struct {
	Email   string `json:"email"`
	Country string `json:"country"`
}

// LineItem — позиция заказа.
type LineItem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	ProductID   int64      `json:"product_id"`
	VariationID int64      `json:"variation_id"`
	Quantity    int        `json:"quantity"`
	SKU         string     `json:"sku"`
	Subtotal    string     `json:"subtotal"`
	Total       string     `json:"total"`
	MetaData    []MetaData `json:"meta_data"`
}

// MetaData — элемент свободного мешка метаданных; value может быть любым JSON.
type MetaData struct {
	ID    int64           `json:"id"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// CouponLine — применённый купон.
type CouponLine struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Discount string `json:"discount"`
}

// Refund — краткая запись о возврате внутри заказа.
type Refund struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
	Total  string `json:"total"`
}

// Product — товар. Variations — id вариаций (для type=variable).
type Product struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	SKU           string     `json:"sku"`
	Price         string     `json:"price"`
	RegularPrice  string     `json:"regular_price"`
	SalePrice     string     `json:"sale_price"`
	StockStatus   string     `json:"stock_status"`
	StockQuantity *int       `json:"stock_quantity"`
	DateCreated   APITime    `json:"date_created_gmt"`
	DateModified  APITime    `json:"date_modified_gmt"`
	Categories    []Category `json:"categories"`
	Variations    []int64    `json:"variations"`
}

// ProductTypeVariable — тип товара с вариациями.
const ProductTypeVariable = "variable"

// IsVariable — товар с вариациями.
func (p *Product) IsVariable() bool { return p.Type == ProductTypeVariable }

// Category — категория товара.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Variation — вариация товара (отдельный эндпоинт).
type Variation struct {
	ID            int64         `json:"id"`
	SKU           string        `json:"sku"`
	Status        string        `json:"status"`
	Price         string        `json:"price"`
	RegularPrice  string        `json:"regular_price"`
	SalePrice     string        `json:"sale_price"`
	StockStatus   string        `json:"stock_status"`
	StockQuantity *int          `json:"stock_quantity"`
	DateCreated   APITime       `json:"date_created_gmt"`
	DateModified  APITime       `json:"date_modified_gmt"`
	Attributes    []VariantAttr `json:"attributes"`
}

// VariantAttr — значение атрибута вариации (размер, цвет и т.д.).
type VariantAttr struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// APITime — время из API: "2006-01-02T15:04:05" (GMT, без зоны), RFC3339 или null.
type APITime struct {
	time.Time
}

const apiTimeLayout = "2006-01-02T15:04:05"

// UnmarshalJSON — парсинг времени во всех встречающихся форматах.
func (t *APITime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("api time: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = ts.UTC()
		return nil
	}
	ts, err := time.ParseInLocation(apiTimeLayout, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("api time %q: %w", raw, err)
	}
	t.Time = ts
	return nil
}

// MarshalJSON — обратно в формат API (пустое время → null).
func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(apiTimeLayout))
}

// Ptr — nil для нулевого времени; удобно для nullable-колонок.
func (t APITime) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.UTC()
	return &v
}
