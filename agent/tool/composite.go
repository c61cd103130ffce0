package tool

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Composite tools chain several API calls into one result so the model
// does not have to orchestrate lookups itself.

// maxGiftSearches bounds the number of catalog queries a single gift
// request may issue.
const maxGiftSearches = 6

func (e *Executor) findProductByName(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[findProductArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.ProductName == "" {
		return nil, errors.New("product_name is required")
	}

	q := url.Values{"search": {args.ProductName}, "page_size": {"10"}}
	setString(q, "brand", args.Brand)
	setString(q, "department", args.Department)
	data, err := e.client.Get(ctx, "/products", q)
	if err != nil {
		return nil, err
	}

	items := listItems(data)
	if len(items) == 0 {
		return map[string]any{
			"found":       false,
			"message":     fmt.Sprintf("No products found matching '%s'", args.ProductName),
			"search_term": args.ProductName,
		}, nil
	}
	return map[string]any{
		"found":       true,
		"products":    items,
		"total_found": intField(data, "total", len(items)),
		"search_term": args.ProductName,
	}, nil
}

func (e *Executor) checkStockByName(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[findProductArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.ProductName == "" {
		return nil, errors.New("product_name is required")
	}

	q := url.Values{"search": {args.ProductName}, "page_size": {"5"}}
	setString(q, "brand", args.Brand)
	setString(q, "department", args.Department)
	data, err := e.client.Get(ctx, "/products", q)
	if err != nil {
		return nil, err
	}

	items := listItems(data)
	if len(items) == 0 {
		return map[string]any{
			"found":       false,
			"message":     fmt.Sprintf("No products found matching '%s'", args.ProductName),
			"search_term": args.ProductName,
		}, nil
	}

	// One stock lookup per match. A single failing lookup degrades that
	// line, never the whole result.
	results := make([]map[string]any, 0, len(items))
	for _, product := range items {
		id := intField(product, "product_id", 0)
		stock, err := e.client.Get(ctx, fmt.Sprintf("/stock/%d", id), nil)
		if err != nil {
			log.Error().Int("product_id", id).Err(err).Msg("stock lookup failed")
			results = append(results, map[string]any{
				"product_id":   product["product_id"],
				"product_name": product["product_name"],
				"error":        "Unable to check stock",
			})
			continue
		}
		results = append(results, map[string]any{
			"product_id":         product["product_id"],
			"product_name":       product["product_name"],
			"product_brand":      product["product_brand"],
			"retail_price":       product["retail_price"],
			"department":         product["department"],
			"stock_quantity":     stock["stock_quantity"],
			"available_quantity": stock["available_quantity"],
			"stock_status":       stock["stock_status"],
			"is_in_stock":        stock["stock_status"] != "OUT_OF_STOCK",
		})
	}

	return map[string]any{
		"found":               true,
		"search_term":         args.ProductName,
		"products_with_stock": results,
		"total_found":         len(results),
	}, nil
}

func (e *Executor) findAddressByLabel(ctx context.Context, raw map[string]any) (any, error) {
	if !e.authed {
		return authRequired("find addresses"), nil
	}
	args, err := decodeArgs[addressLabelArgs](raw)
	if err != nil {
		return nil, err
	}
	label := strings.ToLower(args.Label)
	if label == "" {
		return nil, errors.New("label is required")
	}

	data, err := e.client.Get(ctx, "/addresses", nil)
	if err != nil {
		return nil, err
	}
	addresses := listItems(data)
	if len(addresses) == 0 {
		return map[string]any{
			"found":        false,
			"message":      "No saved addresses found for this customer",
			"search_label": label,
		}, nil
	}

	// Substring match in both directions so "home" finds "Home Address"
	// and "home address" finds "Home".
	var matches []map[string]any
	for _, addr := range addresses {
		stored := strings.ToLower(stringField(addr, "customer_address_label"))
		if stored == "" {
			continue
		}
		if strings.Contains(stored, label) || strings.Contains(label, stored) {
			matches = append(matches, addr)
		}
	}

	if len(matches) == 0 {
		available := make([]map[string]any, 0, len(addresses))
		for _, addr := range addresses {
			available = append(available, map[string]any{
				"customer_address_id": addr["customer_address_id"],
				"label":               addr["customer_address_label"],
				"street":              addr["street_address"],
				"city":                addr["city"],
			})
		}
		return map[string]any{
			"found":               false,
			"message":             fmt.Sprintf("No address found with label '%s'", label),
			"search_label":        label,
			"available_addresses": available,
		}, nil
	}

	return map[string]any{
		"found":                  true,
		"search_label":           label,
		"matching_addresses":     matches,
		"total_found":            len(matches),
		"recommended_address_id": matches[0]["customer_address_id"],
	}, nil
}

func (e *Executor) compareProducts(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[compareArgs](raw)
	if err != nil {
		return nil, err
	}
	if len(args.ProductIDs) < 2 {
		return map[string]any{"error": "At least 2 products are required for comparison"}, nil
	}
	if len(args.ProductIDs) > 5 {
		return map[string]any{"error": "Maximum 5 products can be compared at once"}, nil
	}

	products := make([]map[string]any, 0, len(args.ProductIDs))
	stockInfo := make([]map[string]any, 0, len(args.ProductIDs))
	for _, id := range args.ProductIDs {
		product, err := e.client.Get(ctx, fmt.Sprintf("/products/%d", id), nil)
		if err != nil {
			return nil, err
		}
		products = append(products, product)

		stock, err := e.client.Get(ctx, fmt.Sprintf("/stock/%d", id), nil)
		if err != nil {
			return nil, err
		}
		stockInfo = append(stockInfo, stock)
	}

	return map[string]any{
		"products":   products,
		"stock_info": stockInfo,
		"comparison_attributes": []string{
			"product_name", "product_brand", "retail_price",
			"department", "stock_status",
		},
	}, nil
}

func (e *Executor) giftSuggestions(ctx context.Context, raw map[string]any) (any, error) {
	args, err := decodeArgs[giftArgs](raw)
	if err != nil {
		return nil, err
	}
	recipient := strings.ToLower(args.Recipient)
	if recipient == "" {
		return nil, errors.New("recipient is required")
	}

	categories, ok := giftCategoryTable[recipient]
	if !ok {
		categories = defaultGiftCategories
	}

	terms := categories
	if len(terms) > 3 {
		terms = terms[:3]
	}
	terms = append([]string(nil), terms...)

	// Vague preference wording widens the search instead of being passed
	// through verbatim.
	prefs := strings.ToLower(args.Preferences)
	if prefs != "" {
		for vague, mapped := range vagueQueryTable {
			if strings.Contains(prefs, vague) {
				terms = append(terms, mapped...)
			}
		}
	}
	if len(terms) > maxGiftSearches {
		terms = terms[:maxGiftSearches]
	}

	q := url.Values{"page_size": {"20"}}
	if args.BudgetMax != nil && *args.BudgetMax > 0 {
		q.Set("max_price", strconv.FormatFloat(*args.BudgetMax, 'f', -1, 64))
	}

	seen := make(map[int]bool)
	suggestions := make([]map[string]any, 0, 10)
	for _, term := range terms {
		if len(suggestions) >= 10 {
			break
		}
		q.Set("search", term)
		data, err := e.client.Get(ctx, "/products", q)
		if err != nil {
			// One failed search narrows the pool, it does not sink the
			// whole suggestion request.
			log.Warn().Str("search", term).Err(err).Msg("gift search failed")
			continue
		}
		for _, product := range listItems(data) {
			id := intField(product, "product_id", 0)
			if seen[id] {
				continue
			}
			seen[id] = true
			suggestions = append(suggestions, product)
			if len(suggestions) >= 10 {
				break
			}
		}
	}

	return map[string]any{
		"suggestions":          suggestions,
		"suggested_categories": categories,
		"recipient":            recipient,
		"budget_max":           args.BudgetMax,
	}, nil
}

// listItems pulls the "items" list out of a paginated payload, keeping
// only object entries.
func listItems(data map[string]any) []map[string]any {
	raw, _ := data["items"].([]any)
	items := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		if m, ok := it.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func intField(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return fallback
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
