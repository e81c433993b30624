package bronze

import (
	"strconv"
	"strings"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// ProductTypeVariation — тип строки вариации в bronze_products.
const ProductTypeVariation = "variation"

// OrdersToRows — заказ → одна строка уровня заказа (line_item_id = 0) + по строке на позицию.
// Повторы заказа (сдвиг страниц при пагинации) схлопываются: берётся последний payload,
// позиция — первого вхождения. Натуральные ключи в результате уникальны.
func OrdersToRows(orders []domain.Order, tenantID, site string) []domain.OrderRow {
	orders = dedupeOrders(orders)

	n := 0
	for i := range orders {
		n += 1 + len(orders[i].LineItems)
	}
	rows := make([]domain.OrderRow, 0, n)

	for i := range orders {
		o := &orders[i]
		head := orderHeader(o, tenantID, site)

		orderRow := head
		orderRow.OrderTotal = parseAmount(o.Total)
		orderRow.TotalTax = parseAmount(o.TotalTax)
		orderRow.ShippingTotal = parseAmount(o.ShippingTotal)
		orderRow.DiscountTotal = parseAmount(o.DiscountTotal)
		orderRow.Meta = orderMeta(o)
		rows = append(rows, orderRow)

		seen := make(map[int64]struct{}, len(o.LineItems))
		for j := range o.LineItems {
			li := &o.LineItems[j]
			// id = 0 совпал бы с ключом строки заказа
			if li.ID <= 0 {
				continue
			}
			if _, dup := seen[li.ID]; dup {
				continue
			}
			seen[li.ID] = struct{}{}

			row := head
			row.LineItemID = li.ID
			row.ProductID = li.ProductID
			row.VariationID = li.VariationID
			row.SKU = li.SKU
			row.ProductName = li.Name
			row.Quantity = li.Quantity
			row.ItemSubtotal = parseAmount(li.Subtotal)
			row.ItemTotal = parseAmount(li.Total)
			row.Meta = visibleMeta(li.MetaData)
			rows = append(rows, row)
		}
	}
	return rows
}

// ProductsToRows — товар → строка; вариации товаров типа variable → строки с ParentID.
// variations — вариации по id родителя.
func ProductsToRows(products []domain.Product, variations map[int64][]domain.Variation, tenantID, site string) []domain.ProductRow {
	products = dedupeProducts(products)

	n := len(products)
	for _, vs := range variations {
		n += len(vs)
	}
	rows := make([]domain.ProductRow, 0, n)
	index := make(map[int64]int, n)

	put := func(row domain.ProductRow) {
		if at, ok := index[row.ProductID]; ok {
			rows[at] = row
			return
		}
		index[row.ProductID] = len(rows)
		rows = append(rows, row)
	}

	for i := range products {
		p := &products[i]
		put(productRow(p, tenantID, site))

		if !p.IsVariable() {
			continue
		}
		for j := range variations[p.ID] {
			put(variationRow(p, &variations[p.ID][j], tenantID, site))
		}
	}
	return rows
}

func orderHeader(o *domain.Order, tenantID, site string) domain.OrderRow {
	return domain.OrderRow{
		TenantID:           tenantID,
		OrderID:            o.ID,
		Site:               site,
		OrderNumber:        o.Number,
		Status:             o.Status,
		Currency:           o.Currency,
		DateCreated:        o.DateCreated.Ptr(),
		DateModified:       o.DateModified.Ptr(),
		DatePaid:           o.DatePaid.Ptr(),
		CustomerID:         o.CustomerID,
		BillingEmail:       o.Billing.Email,
		BillingCountry:     o.Billing.Country,
		PaymentMethod:      o.PaymentMethod,
		PaymentMethodTitle: o.PaymentMethodTitle,
	}
}

// orderMeta — плоский мешок метаданных заказа: ключи атрибуции (без префикса) на верхнем уровне,
// рядом coupons, refunds и refund_total; при совпадении имён служебные ключи перекрывают атрибуцию.
func orderMeta(o *domain.Order) map[string]any {
	meta := ExtractAttribution(o.MetaData)

	if len(o.CouponLines) > 0 {
		coupons := make([]map[string]any, 0, len(o.CouponLines))
		for _, c := range o.CouponLines {
			coupons = append(coupons, map[string]any{
				"code":     c.Code,
				"discount": parseAmount(c.Discount),
			})
		}
		meta["coupons"] = coupons
	}

	if len(o.Refunds) > 0 {
		refunds := make([]map[string]any, 0, len(o.Refunds))
		var total float64
		for _, r := range o.Refunds {
			amount := parseAmount(r.Total)
			total += amount
			refunds = append(refunds, map[string]any{
				"id":     r.ID,
				"reason": r.Reason,
				"total":  amount,
			})
		}
		meta["refunds"] = refunds
		// в API возвраты отрицательные
		meta["refund_total"] = -total
	}
	return meta
}

// visibleMeta — метаданные позиции без служебных ключей ("_...").
func visibleMeta(meta []domain.MetaData) map[string]any {
	out := make(map[string]any)
	for i := range meta {
		if meta[i].Key == "" || strings.HasPrefix(meta[i].Key, "_") {
			continue
		}
		out[meta[i].Key] = decodeMetaValue(meta[i].Value)
	}
	return out
}

func productRow(p *domain.Product, tenantID, site string) domain.ProductRow {
	categories := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, c.Name)
	}
	return domain.ProductRow{
		TenantID:      tenantID,
		ProductID:     p.ID,
		Site:          site,
		Name:          p.Name,
		Slug:          p.Slug,
		Type:          p.Type,
		Status:        p.Status,
		SKU:           p.SKU,
		Price:         parseAmount(p.Price),
		RegularPrice:  parseAmount(p.RegularPrice),
		SalePrice:     parseAmount(p.SalePrice),
		StockStatus:   p.StockStatus,
		StockQuantity: p.StockQuantity,
		DateCreated:   p.DateCreated.Ptr(),
		DateModified:  p.DateModified.Ptr(),
		Attributes:    map[string]any{"categories": categories},
	}
}

func variationRow(parent *domain.Product, v *domain.Variation, tenantID, site string) domain.ProductRow {
	parentID := parent.ID

	attrs := make(map[string]any, len(v.Attributes))
	for _, a := range v.Attributes {
		attrs[a.Name] = a.Option
	}
	return domain.ProductRow{
		TenantID:      tenantID,
		ProductID:     v.ID,
		ParentID:      &parentID,
		Site:          site,
		Name:          parent.Name,
		Slug:          parent.Slug,
		Type:          ProductTypeVariation,
		Status:        v.Status,
		SKU:           v.SKU,
		Price:         parseAmount(v.Price),
		RegularPrice:  parseAmount(v.RegularPrice),
		SalePrice:     parseAmount(v.SalePrice),
		StockStatus:   v.StockStatus,
		StockQuantity: v.StockQuantity,
		DateCreated:   v.DateCreated.Ptr(),
		DateModified:  v.DateModified.Ptr(),
		Attributes:    map[string]any{"attributes": attrs},
	}
}

// parseAmount — денежная строка API в число; пусто или мусор → 0.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// dedupeOrders — последний payload побеждает, порядок — по первому вхождению.
func dedupeOrders(orders []domain.Order) []domain.Order {
	index := make(map[int64]int, len(orders))
	out := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if at, ok := index[orders[i].ID]; ok {
			out[at] = orders[i]
			continue
		}
		index[orders[i].ID] = len(out)
		out = append(out, orders[i])
	}
	return out
}

func dedupeProducts(products []domain.Product) []domain.Product {
	index := make(map[int64]int, len(products))
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if at, ok := index[products[i].ID]; ok {
			out[at] = products[i]
			continue
		}
		index[products[i].ID] = len(out)
		out = append(out, products[i])
	}
	return out
}
