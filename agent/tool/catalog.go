package tool

import (
	"github.com/cloudwego/eino/schema"
)

// Name identifies one tool in the fixed catalog. Dispatch is over this
// closed set; anything else is rejected at the executor boundary.
type Name string

const (
	NameSearchProducts        Name = "search_products"
	NameGetProductDetails     Name = "get_product_details"
	NameGetCategories         Name = "get_categories"
	NameGetProductsByCategory Name = "get_products_by_category"
	NameGetBrands             Name = "get_brands"
	NameFindProductByName     Name = "find_product_by_name"
	NameCheckStock            Name = "check_stock"
	NameCheckStockByName      Name = "check_stock_by_name"
	NameGetCart               Name = "get_cart"
	NameAddToCart             Name = "add_to_cart"
	NameRemoveFromCart        Name = "remove_from_cart"
	NameClearCart             Name = "clear_cart"
	NameGetVouchers           Name = "get_vouchers"
	NameApplyVoucher          Name = "apply_voucher"
	NameRemoveVoucher         Name = "remove_voucher"
	NameGetAddresses          Name = "get_addresses"
	NameFindAddressByLabel    Name = "find_address_by_label"
	NameCheckout              Name = "checkout"
	NameGetOrders             Name = "get_orders"
	NameGetOrderDetails       Name = "get_order_details"
	NameCompareProducts       Name = "compare_products"
	NameGetGiftSuggestions    Name = "get_gift_suggestions"
)

var departmentEnum = []string{"Men", "Women"}

var orderStatusEnum = []string{"Processing", "Shipped", "Delivered", "Complete", "Cancelled", "Returned"}

// Catalog returns the ordered descriptor list for every tool the assistant
// may call. The same catalog is attached to every model call; it carries
// no runtime state.
func Catalog() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: string(NameSearchProducts),
			Desc: "Search for products in the e-commerce catalog with optional filters. " +
				"Use this when the user wants to find products, browse items, or search for specific products. " +
				"Supports filtering by category, brand, department, price range, and text search.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"search":      {Type: schema.String, Desc: "Search term to find products by name (partial match supported)"},
				"category_id": {Type: schema.String, Desc: "Filter by category ID"},
				"brand":       {Type: schema.String, Desc: "Filter by brand name (partial match supported)"},
				"department":  {Type: schema.String, Desc: "Filter by department (Men or Women)", Enum: departmentEnum},
				"min_price":   {Type: schema.Number, Desc: "Minimum price filter"},
				"max_price":   {Type: schema.Number, Desc: "Maximum price filter"},
				"page":        {Type: schema.Integer, Desc: "Page number for pagination (default: 1)"},
				"page_size":   {Type: schema.Integer, Desc: "Number of items per page (default: 10, max: 100)"},
			}),
		},
		{
			Name: string(NameGetProductDetails),
			Desc: "Get detailed information about a specific product. " +
				"Use this when the user wants to know more about a particular product, " +
				"see its full details, or when comparing products.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.Integer, Desc: "The unique identifier of the product", Required: true},
			}),
		},
		{
			Name: string(NameGetCategories),
			Desc: "Get all available product categories. " +
				"Use this when the user wants to browse by category or needs to know " +
				"what categories are available in the store.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(NameGetProductsByCategory),
			Desc: "Get all products in a specific category. " +
				"Use this when the user wants to browse products within a particular category.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"category_id": {Type: schema.String, Desc: "The category ID to get products from", Required: true},
				"page":        {Type: schema.Integer, Desc: "Page number for pagination"},
				"page_size":   {Type: schema.Integer, Desc: "Number of items per page"},
			}),
		},
		{
			Name: string(NameGetBrands),
			Desc: "Get all available product brands. " +
				"Use this when the user asks about available brands or wants to filter by brand.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(NameFindProductByName),
			Desc: "Find a product by its name and return the matching product(s). " +
				"Use this when the user mentions a specific product by name and you need to find " +
				"its product_id or details. This is useful when the user asks about a product " +
				"without providing the product ID.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_name": {Type: schema.String, Desc: "The product name to search for (partial or full name)", Required: true},
				"brand":        {Type: schema.String, Desc: "Optional brand name to narrow down the search"},
				"department":   {Type: schema.String, Desc: "Optional department filter", Enum: departmentEnum},
			}),
		},
		{
			Name: string(NameCheckStock),
			Desc: "Check stock availability for a specific product by product ID. " +
				"Use this when you already have the product_id and want to check stock status.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.Integer, Desc: "The product ID to check stock for", Required: true},
			}),
		},
		{
			Name: string(NameCheckStockByName),
			Desc: "Check stock availability for a product by searching its name. " +
				"Use this when the user asks about product availability or stock status " +
				"by mentioning the product name instead of product ID. This tool will search " +
				"for the product by name and return stock information.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_name": {Type: schema.String, Desc: "The product name to search for and check stock", Required: true},
				"brand":        {Type: schema.String, Desc: "Optional brand name to narrow down the search"},
				"department":   {Type: schema.String, Desc: "Optional department filter", Enum: departmentEnum},
			}),
		},
		{
			Name: string(NameGetCart),
			Desc: "Get the current shopping cart contents. " +
				"Use this when the user wants to see their cart, check what's in their cart, " +
				"or review items before checkout. Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(NameAddToCart),
			Desc: "Add a product to the shopping cart. " +
				"Use this when the user wants to add an item to their cart. " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.Integer, Desc: "The product ID to add to cart", Required: true},
			}),
		},
		{
			Name: string(NameRemoveFromCart),
			Desc: "Remove an item from the shopping cart. " +
				"Use this when the user wants to remove a specific item from their cart. " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_item_id": {Type: schema.String, Desc: "The order item ID to remove from cart", Required: true},
			}),
		},
		{
			Name: string(NameClearCart),
			Desc: "Clear all items from the shopping cart. " +
				"Use this when the user wants to empty their entire cart. " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(NameGetVouchers),
			Desc: "Get all active and valid vouchers/discount codes. " +
				"Use this when the user asks about available discounts, promo codes, " +
				"or wants to know what vouchers they can use.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(NameApplyVoucher),
			Desc: "Apply a voucher/discount code to the shopping cart. " +
				"Use this when the user wants to apply a promo code or discount. " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"voucher_code": {Type: schema.String, Desc: "The voucher code to apply", Required: true},
			}),
		},
		{
			Name: string(NameRemoveVoucher),
			Desc: "Remove the applied voucher from the shopping cart. " +
				"Use this when the user wants to remove a discount code. " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(NameGetAddresses),
			Desc: "Get customer's saved shipping addresses. " +
				"Use this when preparing for checkout or when the user asks about " +
				"their saved addresses. Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(NameFindAddressByLabel),
			Desc: "Find a customer's address by its label (e.g., \"Home\", \"Office\", \"Work\"). " +
				"Use this when the user mentions an address by name/label instead of providing the address ID. " +
				"For example, when user says \"send to my home\" or \"use my office address\". " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"label": {Type: schema.String, Desc: "The address label to search for (e.g., 'Home', 'Office', 'Work')", Required: true},
			}),
		},
		{
			Name: string(NameCheckout),
			Desc: "Process checkout and place an order. " +
				"Use this when the user is ready to complete their purchase. " +
				"Requires authentication and a shipping address.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"shipping_address_id": {Type: schema.String, Desc: "The customer's shipping address ID", Required: true},
				"voucher_code":        {Type: schema.String, Desc: "Optional voucher code to apply at checkout"},
			}),
		},
		{
			Name: string(NameGetOrders),
			Desc: "Get customer's order history. " +
				"Use this when the user wants to see their past orders or check order status. " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"status":    {Type: schema.String, Desc: "Filter orders by status", Enum: orderStatusEnum},
				"page":      {Type: schema.Integer, Desc: "Page number for pagination"},
				"page_size": {Type: schema.Integer, Desc: "Number of items per page"},
			}),
		},
		{
			Name: string(NameGetOrderDetails),
			Desc: "Get details of a specific order. " +
				"Use this when the user wants to see details of a particular order. " +
				"Requires authentication.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id": {Type: schema.Integer, Desc: "The order ID to get details for", Required: true},
			}),
		},
		{
			Name: string(NameCompareProducts),
			Desc: "Compare multiple products side by side. " +
				"Use this when the user wants to compare two or more products, " +
				"understand differences between items, or make a decision between options.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_ids": {
					Type:     schema.Array,
					Desc:     "List of product IDs to compare (2-5 products)",
					ElemInfo: &schema.ParameterInfo{Type: schema.Integer},
					Required: true,
				},
			}),
		},
		{
			Name: string(NameGetGiftSuggestions),
			Desc: "Get product suggestions for gifts based on criteria. " +
				"Use this when the user is looking for gift ideas or needs recommendations " +
				"for someone else. Maps vague queries to relevant product categories.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"recipient":   {Type: schema.String, Desc: "Who the gift is for (e.g., 'girlfriend', 'mother', 'friend')", Required: true},
				"occasion":    {Type: schema.String, Desc: "The occasion (e.g., 'birthday', 'anniversary', 'christmas')"},
				"budget_max":  {Type: schema.Number, Desc: "Maximum budget for the gift"},
				"preferences": {Type: schema.String, Desc: "Any known preferences or interests"},
			}),
		},
	}
}
