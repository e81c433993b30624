//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeTenant — аккаунт с полными учётными данными и уникальным id.
func MakeTenant(opts ...func(*domain.TenantConfig)) domain.TenantConfig {
	id := "shop-" + UniqSuffix()
	t := domain.TenantConfig{
		ID:             id,
		Name:           "Shop " + id,
		BaseURL:        "https://" + id + ".example.com",
		ConsumerKey:    "ck_" + UniqSuffix(),
		ConsumerSecret: "cs_" + UniqSuffix(),
	}
	for _, fn := range opts {
		fn(&t)
	}
	return t
}

// MakeOrderRows — строка уровня заказа и lines строк позиций.
func MakeOrderRows(tenantID string, orderID int64, lines int) []domain.OrderRow {
	now := time.Now().UTC().Truncate(time.Second)
	rows := []domain.OrderRow{{
		TenantID:     tenantID,
		OrderID:      orderID,
		Site:         "shop.example.com",
		OrderNumber:  "N-" + UniqSuffix(),
		Status:       "completed",
		Currency:     "USD",
		DateCreated:  &now,
		OrderTotal:   float64(lines) * 10,
		BillingEmail: "john@example.com",
		Meta: map[string]any{
			"source_type":  "organic",
			"refund_total": 0.0,
		},
	}}
	for i := 1; i <= lines; i++ {
		rows = append(rows, domain.OrderRow{
			TenantID:    tenantID,
			OrderID:     orderID,
			LineItemID:  orderID*100 + int64(i),
			Site:        "shop.example.com",
			Status:      "completed",
			ProductID:   int64(i),
			ProductName: "Widget",
			Quantity:    1,
			ItemTotal:   10,
			Meta:        map[string]any{},
		})
	}
	return rows
}

// MakeProductRows — variable-товар с vars вариациями.
func MakeProductRows(tenantID string, productID int64, vars int) []domain.ProductRow {
	qty := 5
	rows := []domain.ProductRow{{
		TenantID:      tenantID,
		ProductID:     productID,
		Name:          "Hoodie",
		Slug:          "hoodie",
		Type:          domain.ProductTypeVariable,
		Status:        "publish",
		Price:         25,
		StockQuantity: &qty,
		Attributes:    map[string]any{"categories": []string{"Clothing"}},
	}}
	for i := 1; i <= vars; i++ {
		parent := productID
		rows = append(rows, domain.ProductRow{
			TenantID:   tenantID,
			ProductID:  productID*100 + int64(i),
			ParentID:   &parent,
			Name:       "Hoodie",
			Type:       "variation",
			Price:      25,
			Attributes: map[string]any{"attributes": map[string]any{"Size": "M"}},
		})
	}
	return rows
}
