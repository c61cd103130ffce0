package ecom

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); err == nil {
		t.Errorf("New(empty) error = nil, want base url error")
	}
	if _, err := New(Config{BaseURL: "not a url"}); err == nil {
		t.Errorf("New(garbage url) error = nil, want parse error")
	}

	client, err := New(Config{BaseURL: "http://ecom.test/api/v1/"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.baseURL != "http://ecom.test/api/v1" {
		t.Errorf("base url = %q, want trailing slash trimmed", client.baseURL)
	}
}

func TestGetSendsHeadersAndQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type = %q", got)
		}
		if got := r.URL.RawQuery; got != "page=2" {
			t.Errorf("query = %q, want page=2", got)
		}
		w.Write([]byte(`{"status":"OK","status_code":200,"message":"OK","data":{"total":5}}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	data, err := client.Get(context.Background(), "/orders", url.Values{"page": {"2"}})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := data["total"]; got != float64(5) {
		t.Errorf("data total = %v, want 5", got)
	}
}

func TestGetOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Errorf("authorization header sent for guest client")
		}
		w.Write([]byte(`{"status":"OK","status_code":200,"message":"OK","data":null}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	data, err := client.Get(context.Background(), "/categories", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("null data decoded to %v, want empty map", data)
	}
}

func TestPostMarshalsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("body not JSON: %v", err)
		}
		if got := body["product_id"]; got != float64(12) {
			t.Errorf("body product_id = %v, want 12", got)
		}
		w.Write([]byte(`{"status":"OK","status_code":200,"message":"OK","data":{"cart_items":1}}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, Token: "t"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	data, err := client.Post(context.Background(), "/cart/items", map[string]any{"product_id": 12})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if got := data["cart_items"]; got != float64(1) {
		t.Errorf("data = %v", data)
	}
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":"Conflict","status_code":409,"message":"Voucher already applied","data":null}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	_, err = client.Post(context.Background(), "/orders/cart/voucher", map[string]any{"voucher_code": "X"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "Voucher already applied" {
		t.Errorf("api error = %+v", apiErr)
	}
}

func TestErrorWithoutEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	_, err = client.Get(context.Background(), "/products", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "" {
		t.Errorf("api error = %+v", apiErr)
	}
	if apiErr.Error() != "ecom api status=502" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}
