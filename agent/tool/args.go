package tool

import (
	"encoding/json"
	"fmt"
)

// Per-tool argument structs. The model emits loosely typed JSON; each
// handler decodes into one of these before touching the API.

type searchProductsArgs struct {
	Search     string   `json:"search"`
	CategoryID string   `json:"category_id"`
	Brand      string   `json:"brand"`
	Department string   `json:"department"`
	MinPrice   *float64 `json:"min_price"`
	MaxPrice   *float64 `json:"max_price"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

type productDetailsArgs struct {
	ProductID int64 `json:"product_id"`
}

type categoryProductsArgs struct {
	CategoryID string `json:"category_id"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

type findProductArgs struct {
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Department  string `json:"department"`
}

type stockArgs struct {
	ProductID int64 `json:"product_id"`
}

type cartAddArgs struct {
	ProductID int64 `json:"product_id"`
}

type cartRemoveArgs struct {
	OrderItemID string `json:"order_item_id"`
}

type voucherArgs struct {
	VoucherCode string `json:"voucher_code"`
}

type addressLabelArgs struct {
	Label string `json:"label"`
}

type checkoutArgs struct {
	ShippingAddressID string `json:"shipping_address_id"`
	VoucherCode       string `json:"voucher_code"`
}

type ordersArgs struct {
	Status   string `json:"status"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type orderDetailsArgs struct {
	OrderID int64 `json:"order_id"`
}

type compareArgs struct {
	ProductIDs []int64 `json:"product_ids"`
}

type giftArgs struct {
	Recipient   string   `json:"recipient"`
	Occasion    string   `json:"occasion"`
	BudgetMax   *float64 `json:"budget_max"`
	Preferences string   `json:"preferences"`
}

// decodeArgs converts a raw argument map into a typed struct via a JSON
// round trip. Unknown keys are dropped rather than rejected.
func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(args)
	if err != nil {
		return out, fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode arguments: %w", err)
	}
	return out, nil
}
