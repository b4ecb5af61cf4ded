package schema

import (
	"time"

	"github.com/retailworks/retailpulse/internal/record"
)

// SalesContract is the cleansed-layer contract for sales rows. The reference
// time is passed in so a run validates against its own "now" and stays
// reproducible.
func SalesContract(now time.Time) Contract {
	return Contract{
		Table:    "sales",
		IDColumn: "sales_id",
		Unique:   []string{"sales_id"},
		Columns: []Column{
			{Name: "sales_id", Type: TypeInt, Checks: []Check{GreaterThan("sales_id > 0", 0)}},
			{Name: "product_id", Type: TypeInt, Checks: []Check{GreaterThan("product_id > 0", 0)}},
			{Name: "region", Type: TypeString},
			{Name: "quantity", Type: TypeInt, Checks: []Check{AtLeast("quantity >= 0", 0)}},
			{Name: "price", Type: TypeDecimal, Checks: []Check{AtLeast("price >= 0", 0)}},
			{Name: "timestamp", Type: TypeDateTime, Checks: []Check{NotAfter("timestamp <= now", now)}},
			{Name: "discount", Type: TypeDecimal, Checks: []Check{InRange("discount in [0,1]", 0, 1)}},
			{Name: "order_status", Type: TypeString, Checks: []Check{OneOf("order_status in known set", record.OrderStatuses()...)}},
		},
	}
}

// ProductContract is the cleansed-layer contract for product rows.
func ProductContract(now time.Time) Contract {
	return Contract{
		Table:    "product",
		IDColumn: "product_id",
		Unique:   []string{"product_id"},
		Columns: []Column{
			{Name: "product_id", Type: TypeInt, Checks: []Check{GreaterThan("product_id > 0", 0)}},
			{Name: "category", Type: TypeString, Checks: []Check{Lowercase("category is lowercase")}},
			{Name: "brand", Type: TypeString, Checks: []Check{Uppercase("brand is uppercase")}},
			{Name: "rating", Type: TypeDecimal, Checks: []Check{InRange("rating in [0,5]", 0, 5)}},
			{Name: "in_stock", Type: TypeBool},
			{Name: "launch_date", Type: TypeDateTime, Checks: []Check{NotAfter("launch_date <= now", now)}},
		},
	}
}
