package domain

import "time"

// OrderRow — строка bronze_orders.
// line_item_id = 0 — строка уровня заказа (итоги, покупатель, оплата, meta);
// line_item_id > 0 — строка позиции (товар, количество, сумма).
// Натуральный ключ: (tenant_id, order_id, line_item_id).
type OrderRow struct {
	TenantID           string         `json:"tenant_id"`
	OrderID            int64          `json:"order_id"`
	LineItemID         int64          `json:"line_item_id"`
	Site               string         `json:"site"`
	OrderNumber        string         `json:"order_number"`
	Status             string         `json:"status"`
	Currency           string         `json:"currency"`
	DateCreated        *time.Time     `json:"date_created"`
	DateModified       *time.Time     `json:"date_modified"`
	DatePaid           *time.Time     `json:"date_paid"`
	CustomerID         int64          `json:"customer_id"`
	BillingEmail       string         `json:"billing_email"`
	BillingCountry     string         `json:"billing_country"`
	PaymentMethod      string         `json:"payment_method"`
	PaymentMethodTitle string         `json:"payment_method_title"`
	OrderTotal         float64        `json:"order_total"`
	TotalTax           float64        `json:"total_tax"`
	ShippingTotal      float64        `json:"shipping_total"`
	DiscountTotal      float64        `json:"discount_total"`
	ProductID          int64          `json:"product_id"`
	VariationID        int64          `json:"variation_id"`
	SKU                string         `json:"sku"`
	ProductName        string         `json:"product_name"`
	Quantity           int            `json:"quantity"`
	ItemSubtotal       float64        `json:"item_subtotal"`
	ItemTotal          float64        `json:"item_total"`
	Meta               map[string]any `json:"meta"`
}

// OrderRowKey — натуральный ключ строки заказа.
type OrderRowKey struct {
	TenantID   string
	OrderID    int64
	LineItemID int64
}

// Key — натуральный ключ.
func (r *OrderRow) Key() OrderRowKey {
	return OrderRowKey{TenantID: r.TenantID, OrderID: r.OrderID, LineItemID: r.LineItemID}
}

// IsOrderLevel — строка уровня заказа.
func (r *OrderRow) IsOrderLevel() bool { return r.LineItemID == 0 }

// ProductRow — строка bronze_products: товар или вариация (ParentID != nil).
// Натуральный ключ: (tenant_id, product_id).
type ProductRow struct {
	TenantID      string         `json:"tenant_id"`
	ProductID     int64          `json:"product_id"`
	ParentID      *int64         `json:"parent_id"`
	Site          string         `json:"site"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	SKU           string         `json:"sku"`
	Price         float64        `json:"price"`
	RegularPrice  float64        `json:"regular_price"`
	SalePrice     float64        `json:"sale_price"`
	StockStatus   string         `json:"stock_status"`
	StockQuantity *int           `json:"stock_quantity"`
	DateCreated   *time.Time     `json:"date_created"`
	DateModified  *time.Time     `json:"date_modified"`
	Attributes    map[string]any `json:"attributes"`
}

// ProductRowKey — натуральный ключ строки товара.
type ProductRowKey struct {
	TenantID  string
	ProductID int64
}

// Key — натуральный ключ.
func (r *ProductRow) Key() ProductRowKey {
	return ProductRowKey{TenantID: r.TenantID, ProductID: r.ProductID}
}
