package nodes

import (
	"testing"

	contractx "github.com/naruebet/shopchat/agent/contract"
)

func invocation(tool string, data any) contractx.ToolInvocation {
	return contractx.ToolInvocation{
		Tool:   tool,
		Result: contractx.ToolOutcome{Success: true, Data: data},
	}
}

func TestExtractProductsFromSearchItems(t *testing.T) {
	t.Parallel()

	state := &GraphState{Invocations: []contractx.ToolInvocation{
		invocation("search_products", map[string]any{
			"items": []any{
				map[string]any{"product_id": float64(1), "product_name": "Canvas Tote"},
				map[string]any{"category_id": float64(9)},
				map[string]any{"product_id": float64(2), "product_name": "Leather Tote"},
			},
		}),
	}}

	out, err := ExtractProducts(state)
	if err != nil {
		t.Fatalf("ExtractProducts() error = %v", err)
	}
	if len(out.Products) != 2 {
		t.Fatalf("products len = %d, want 2 (entries without product_id skipped)", len(out.Products))
	}
	if got, want := out.Products[0]["image_url"], "https://picsum.photos/seed/1/200/200"; got != want {
		t.Errorf("image_url = %v, want %q", got, want)
	}
}

func TestExtractProductsSingleAndSuggestionShapes(t *testing.T) {
	t.Parallel()

	state := &GraphState{Invocations: []contractx.ToolInvocation{
		invocation("get_product_details", map[string]any{"product_id": float64(5), "product_name": "Watch"}),
		invocation("get_gift_suggestions", map[string]any{
			"suggestions": []any{
				map[string]any{"product_id": float64(6), "product_name": "Bracelet"},
			},
		}),
		invocation("compare_products", map[string]any{
			"products": []any{
				map[string]any{"product_id": float64(5), "product_name": "Watch"},
				map[string]any{"product_id": float64(7), "product_name": "Chronograph"},
			},
		}),
	}}

	out, err := ExtractProducts(state)
	if err != nil {
		t.Fatalf("ExtractProducts() error = %v", err)
	}
	if len(out.Products) != 3 {
		t.Fatalf("products len = %d, want deduplicated 3", len(out.Products))
	}
	// First-seen order wins: the detail lookup's Watch comes first.
	if got := out.Products[0]["product_id"]; got != float64(5) {
		t.Errorf("first product id = %v, want 5", got)
	}
	if got := out.Products[2]["product_id"]; got != float64(7) {
		t.Errorf("last product id = %v, want 7", got)
	}
}

func TestExtractProductsNormalizesTypedPayloads(t *testing.T) {
	t.Parallel()

	type typedResult struct {
		Items []map[string]any `json:"items"`
	}
	state := &GraphState{Invocations: []contractx.ToolInvocation{
		invocation("find_product_by_name", typedResult{Items: []map[string]any{
			{"product_id": 3, "product_name": "Raincoat"},
		}}),
	}}

	out, err := ExtractProducts(state)
	if err != nil {
		t.Fatalf("ExtractProducts() error = %v", err)
	}
	if len(out.Products) != 1 {
		t.Fatalf("products len = %d, want 1", len(out.Products))
	}
	if got, want := out.Products[0]["image_url"], "https://picsum.photos/seed/3/200/200"; got != want {
		t.Errorf("image_url = %v, want %q", got, want)
	}
}

func TestExtractProductsKeepsExistingImage(t *testing.T) {
	t.Parallel()

	state := &GraphState{Invocations: []contractx.ToolInvocation{
		invocation("get_product_details", map[string]any{
			"product_id": float64(8),
			"image_url":  "https://cdn.example.com/8.jpg",
		}),
	}}

	out, err := ExtractProducts(state)
	if err != nil {
		t.Fatalf("ExtractProducts() error = %v", err)
	}
	if got := out.Products[0]["image_url"]; got != "https://cdn.example.com/8.jpg" {
		t.Errorf("image_url = %v, want upstream image preserved", got)
	}
}

func TestExtractProductsNoneFound(t *testing.T) {
	t.Parallel()

	state := &GraphState{Invocations: []contractx.ToolInvocation{
		invocation("get_categories", map[string]any{"categories": []any{"Men", "Women"}}),
		{Tool: "get_cart", Result: contractx.ToolOutcome{Error: "boom"}},
	}}

	out, err := ExtractProducts(state)
	if err != nil {
		t.Fatalf("ExtractProducts() error = %v", err)
	}
	if out.Products != nil {
		t.Errorf("products = %v, want nil when nothing product-shaped", out.Products)
	}
}
