package nodes

import (
	"encoding/json"
	"fmt"
)

// ExtractProducts lifts product data out of the turn's tool results so
// a frontend can render cards without parsing the reply text. Products
// are deduplicated by product_id in first-seen order.
func ExtractProducts(in *GraphState) (*GraphState, error) {
	var products []map[string]any
	for _, inv := range in.Invocations {
		data := outcomeData(inv.Result.Data)
		if data == nil {
			continue
		}

		switch {
		case data["items"] != nil:
			for _, item := range itemMaps(data["items"]) {
				if _, ok := item["product_id"]; ok {
					products = append(products, withProductImage(item))
				}
			}
		case data["product_id"] != nil:
			products = append(products, withProductImage(data))
		case data["suggestions"] != nil:
			for _, item := range itemMaps(data["suggestions"]) {
				products = append(products, withProductImage(item))
			}
		case data["products"] != nil:
			for _, item := range itemMaps(data["products"]) {
				products = append(products, withProductImage(item))
			}
		}
	}

	seen := map[any]bool{}
	var unique []map[string]any
	for _, p := range products {
		id := p["product_id"]
		if id == nil || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, withProductImage(p))
	}

	in.Products = unique
	return in, nil
}

// outcomeData normalizes a tool result payload to a map via a JSON
// round trip, so typed payloads and plain maps read the same.
func outcomeData(data any) map[string]any {
	if data == nil {
		return nil
	}
	if m, ok := data.(map[string]any); ok {
		return m
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func itemMaps(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		// Handler-built payloads carry typed slices.
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		if m, ok := it.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// withProductImage fills image_url with a deterministic placeholder
// seeded by product_id, leaving any upstream image untouched.
func withProductImage(product map[string]any) map[string]any {
	id := product["product_id"]
	if id == nil {
		return product
	}
	if _, ok := product["image_url"]; ok {
		return product
	}
	product["image_url"] = fmt.Sprintf("https://picsum.photos/seed/%v/200/200", formatID(id))
	return product
}

func formatID(id any) string {
	if f, ok := id.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", id)
}
