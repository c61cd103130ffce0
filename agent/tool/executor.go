// Package tool declares the assistant's tool surface and executes tool
// calls against the e-commerce API.
package tool

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	contractx "github.com/naruebet/shopchat/agent/contract"
	ecomx "github.com/naruebet/shopchat/pkg/ecom"
)

// Executor runs tool calls for one conversation turn. It holds an API
// client scoped to that turn's credentials and must be closed when the
// turn ends.
type Executor struct {
	client *ecomx.Client
	authed bool
}

var _ contractx.ToolRunner = (*Executor)(nil)

// NewExecutor builds an executor bound to the turn's execution context.
func NewExecutor(ec contractx.ExecutionContext) (*Executor, error) {
	client, err := ecomx.New(ecomx.Config{BaseURL: ec.BaseURL, Token: ec.AuthToken})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}
	return &Executor{client: client, authed: ec.AuthToken != ""}, nil
}

// NewRunner is NewExecutor in contractx.ToolRunnerFactory shape.
func NewRunner(ec contractx.ExecutionContext) (contractx.ToolRunner, error) {
	return NewExecutor(ec)
}

// Close releases the underlying API client.
func (e *Executor) Close() {
	e.client.Close()
}

// Execute runs a single named tool call. Failures never propagate as
// errors: every outcome, including a handler panic, is folded into a
// ToolOutcome the model can read.
func (e *Executor) Execute(ctx context.Context, tool string, args map[string]any) (out contractx.ToolOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("tool", tool).Any("panic", r).Msg("tool execution panicked")
			out = contractx.ToolOutcome{Error: fmt.Sprintf("internal error executing %s", tool)}
		}
	}()

	data, err := e.dispatch(ctx, Name(tool), args)
	if err != nil {
		var apiErr *ecomx.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			log.Error().Str("tool", tool).Int("status_code", apiErr.StatusCode).Msg(apiErr.Message)
			return contractx.ToolOutcome{Error: apiErr.Message}
		}
		log.Error().Str("tool", tool).Err(err).Msg("tool execution failed")
		return contractx.ToolOutcome{Error: err.Error()}
	}
	return contractx.ToolOutcome{Success: true, Data: data}
}

func (e *Executor) dispatch(ctx context.Context, tool Name, args map[string]any) (any, error) {
	switch tool {
	case NameSearchProducts:
		return e.searchProducts(ctx, args)
	case NameGetProductDetails:
		return e.productDetails(ctx, args)
	case NameGetCategories:
		return e.client.Get(ctx, "/categories", nil)
	case NameGetProductsByCategory:
		return e.productsByCategory(ctx, args)
	case NameGetBrands:
		return e.client.Get(ctx, "/products/brands", nil)
	case NameFindProductByName:
		return e.findProductByName(ctx, args)
	case NameCheckStock:
		return e.checkStock(ctx, args)
	case NameCheckStockByName:
		return e.checkStockByName(ctx, args)
	case NameGetCart:
		if !e.authed {
			return authRequired("view cart"), nil
		}
		return e.client.Get(ctx, "/cart", nil)
	case NameAddToCart:
		return e.addToCart(ctx, args)
	case NameRemoveFromCart:
		return e.removeFromCart(ctx, args)
	case NameClearCart:
		if !e.authed {
			return authRequired("clear cart"), nil
		}
		return e.client.Delete(ctx, "/cart")
	case NameGetVouchers:
		return e.client.Get(ctx, "/orders/vouchers", nil)
	case NameApplyVoucher:
		return e.applyVoucher(ctx, args)
	case NameRemoveVoucher:
		if !e.authed {
			return authRequired("remove voucher"), nil
		}
		return e.client.Delete(ctx, "/orders/cart/voucher")
	case NameGetAddresses:
		if !e.authed {
			return authRequired("view addresses"), nil
		}
		return e.client.Get(ctx, "/addresses", nil)
	case NameFindAddressByLabel:
		return e.findAddressByLabel(ctx, args)
	case NameCheckout:
		return e.checkout(ctx, args)
	case NameGetOrders:
		return e.orders(ctx, args)
	case NameGetOrderDetails:
		return e.orderDetails(ctx, args)
	case NameCompareProducts:
		return e.compareProducts(ctx, args)
	case NameGetGiftSuggestions:
		return e.giftSuggestions(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", tool)
	}
}

// authRequired is the outcome for authenticated tools called without a
// token. It is a successful tool result carrying an error payload, so
// the model can ask the customer to sign in instead of retrying.
func authRequired(action string) map[string]any {
	return map[string]any{"error": "Authentication required to " + action}
}

func (e *Executor) searchProducts(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[searchProductsArgs](raw)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "search", args.Search)
	setString(q, "category_id", args.CategoryID)
	setString(q, "brand", args.Brand)
	setString(q, "department", args.Department)
	setFloat(q, "min_price", args.MinPrice)
	setFloat(q, "max_price", args.MaxPrice)
	setInt(q, "page", args.Page)
	setInt(q, "page_size", args.PageSize)
	return e.client.Get(ctx, "/products", q)
}

func (e *Executor) productDetails(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[productDetailsArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.ProductID <= 0 {
		return nil, errors.New("product_id is required")
	}
	return e.client.Get(ctx, fmt.Sprintf("/products/%d", args.ProductID), nil)
}

func (e *Executor) productsByCategory(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[categoryProductsArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.CategoryID == "" {
		return nil, errors.New("category_id is required")
	}
	q := url.Values{}
	setInt(q, "page", args.Page)
	setInt(q, "page_size", args.PageSize)
	return e.client.Get(ctx, "/categories/"+url.PathEscape(args.CategoryID)+"/products", q)
}

func (e *Executor) checkStock(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[stockArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.ProductID <= 0 {
		return nil, errors.New("product_id is required")
	}
	return e.client.Get(ctx, fmt.Sprintf("/stock/%d", args.ProductID), nil)
}

func (e *Executor) addToCart(ctx context.Context, raw map[string]any) (any, error) {
	if !e.authed {
		return authRequired("add to cart"), nil
	}
	args, err := decodeArgs[cartAddArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.ProductID <= 0 {
		return nil, errors.New("product_id is required")
	}
	return e.client.Post(ctx, "/cart/items", map[string]any{"product_id": args.ProductID})
}

func (e *Executor) removeFromCart(ctx context.Context, raw map[string]any) (any, error) {
	if !e.authed {
		return authRequired("modify cart"), nil
	}
	args, err := decodeArgs[cartRemoveArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.OrderItemID == "" {
		return nil, errors.New("order_item_id is required")
	}
	return e.client.Delete(ctx, "/cart/items/"+url.PathEscape(args.OrderItemID))
}

func (e *Executor) applyVoucher(ctx context.Context, raw map[string]any) (any, error) {
	if !e.authed {
		return authRequired("apply voucher"), nil
	}
	args, err := decodeArgs[voucherArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.VoucherCode == "" {
		return nil, errors.New("voucher_code is required")
	}
	return e.client.Post(ctx, "/orders/cart/voucher", map[string]any{"voucher_code": args.VoucherCode})
}

func (e *Executor) checkout(ctx context.Context, raw map[string]any) (any, error) {
	if !e.authed {
		return authRequired("checkout"), nil
	}
	args, err := decodeArgs[checkoutArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.ShippingAddressID == "" {
		return nil, errors.New("shipping_address_id is required")
	}
	body := map[string]any{"shipping_address_id": args.ShippingAddressID}
	if args.VoucherCode != "" {
		body["voucher_code"] = args.VoucherCode
	}
	return e.client.Post(ctx, "/orders/checkout", body)
}

func (e *Executor) orders(ctx context.Context, raw map[string]any) (any, error) {
	if !e.authed {
		return authRequired("view orders"), nil
	}
	args, err := decodeArgs[ordersArgs](raw)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "status", args.Status)
	setInt(q, "page", args.Page)
	setInt(q, "page_size", args.PageSize)
	return e.client.Get(ctx, "/orders", q)
}

func (e *Executor) orderDetails(ctx context.Context, raw map[string]any) (any, error) {
	if !e.authed {
		return authRequired("view order details"), nil
	}
	args, err := decodeArgs[orderDetailsArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.OrderID <= 0 {
		return nil, errors.New("order_id is required")
	}
	return e.client.Get(ctx, fmt.Sprintf("/orders/%d", args.OrderID), nil)
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setFloat(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}
