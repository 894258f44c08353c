package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, nil)
}

func writeEnvelope(w http.ResponseWriter, status int, data string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, `{"statusCode":`+strconv.Itoa(status)+`,"message":"ok","data":`+data+`}`)
}

func TestDoSendsBearerTokenAndDecodesData(t *testing.T) {
	var gotAuth, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		writeEnvelope(w, http.StatusOK, `{"id":7,"userId":3}`)
	})

	var cart models.Cart
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/3/cart", Token: "tok"}, &cart)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
	if gotPath != "/user/3/cart" {
		t.Errorf("Expected path /user/3/cart, got %s", gotPath)
	}
	if cart.ID != 7 || cart.UserID != 3 {
		t.Errorf("Unexpected cart: %+v", cart)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("Expected no Authorization header")
		}
		writeEnvelope(w, http.StatusOK, `[]`)
	})

	var out []models.Category
	if err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/category"}, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestDoMissingDataIsFailureEvenOn200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"statusCode":200,"message":"ok"}`)
	})

	var cart models.Cart
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/1/cart"}, &cart)
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("Expected ErrMissingData, got %v", err)
	}
}

func TestDoNullDataIsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `null`)
	})

	var cart models.Cart
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/1/cart"}, &cart)
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("Expected ErrMissingData, got %v", err)
	}
}

func TestDoErrorEnvelopeBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"statusCode":400,"message":["quantity must be positive","cartId is required"]}`)
	})

	err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/cart-items"}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Message != "quantity must be positive; cartId is required" {
		t.Errorf("Unexpected message %q", apiErr.Message)
	}
}

func TestDoEnvelopeStatusOverridesHTTPStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"statusCode":404,"message":"Cart not found","data":null}`)
	})

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/1/cart"}, &models.Cart{})
	if !IsNotFound(err) {
		t.Fatalf("Expected not found, got %v", err)
	}
}

func TestDoNonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	})

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/products"}, nil)
	if !IsStatus(err, http.StatusBadGateway) {
		t.Fatalf("Expected 502 APIError, got %v", err)
	}
}

func TestDoRejectsShapeMismatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// cartItems missing entirely
		writeEnvelope(w, http.StatusOK, `{"id":5,"userId":1}`)
	})

	var details models.CartDetails
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/1/cart/cart-details"}, &details)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("Expected ErrInvalidPayload, got %v", err)
	}
}

func TestDoRejectsInvalidSliceElement(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `[{"id":1,"name":"Shirts"},{"id":0,"name":""}]`)
	})

	var out []models.Category
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/category"}, &out)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("Expected ErrInvalidPayload, got %v", err)
	}
}

func TestDoEncodesJSONBody(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}
		json.NewDecoder(r.Body).Decode(&body)
		writeEnvelope(w, http.StatusCreated, `{"id":9,"orderId":1,"productVariantId":2,"quantity":1,"unitPrice":100000,"totalPrice":100000}`)
	})

	svc := NewOrderService(c)
	_, err := svc.CreateOrderItem(context.Background(), "tok", models.NewOrderItem{
		OrderID:          1,
		ProductVariantID: 2,
		Quantity:         1,
		UnitPrice:        decimal.NewFromInt(100000),
		TotalPrice:       decimal.NewFromInt(100000),
	})
	if err != nil {
		t.Fatalf("CreateOrderItem: %v", err)
	}

	if v, ok := body["unitPrice"].(float64); !ok || v != 100000 {
		t.Errorf("Expected unitPrice as JSON number, got %#v", body["unitPrice"])
	}
}

func TestVariantServiceSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Expected multipart body, got %s", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if got := r.FormValue("variantSize"); got != "M" {
			t.Errorf("Expected variantSize M, got %q", got)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		if hdr.Filename != "front.jpg" {
			t.Errorf("Expected filename front.jpg, got %s", hdr.Filename)
		}
		writeEnvelope(w, http.StatusCreated, `{"id":11,"productId":4,"variantName":"Tee M","variantSize":"M","variantColor":"black","price":150000,"stock":3}`)
	})

	svc := NewVariantService(c)
	v, err := svc.CreateVariant(context.Background(), "tok", models.NewVariant{
		ProductID:        4,
		CreateByUserID:   1,
		VariantName:      "Tee M",
		VariantColor:     "black",
		VariantSize:      "M",
		Price:            decimal.NewFromInt(150000),
		Stock:            3,
		StockKeepingUnit: "TEE-M-BLK",
	}, "front.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if v.ID != 11 {
		t.Errorf("Expected id 11, got %d", v.ID)
	}
}

func TestVariantServiceValidatesBeforeSending(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := NewVariantService(c).CreateVariant(context.Background(), "tok", models.NewVariant{ProductID: 4}, "", nil)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Expected ErrInvalidRequest, got %v", err)
	}
	if called {
		t.Error("Expected no network call for invalid variant")
	}
}

func TestCartServicePaths(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			writeEnvelope(w, http.StatusOK, `{}`)
		default:
			writeEnvelope(w, http.StatusOK, `{"id":1,"cartId":2,"productVariantId":3,"quantity":4}`)
		}
	})

	svc := NewCartService(c)
	ctx := context.Background()
	if _, err := svc.UpdateCartItem(ctx, "tok", 1, 4); err != nil {
		t.Fatalf("UpdateCartItem: %v", err)
	}
	if err := svc.DeleteCartItem(ctx, "tok", 1); err != nil {
		t.Fatalf("DeleteCartItem: %v", err)
	}
	if _, err := svc.CreateCartItem(ctx, "tok", 9, models.NewCartItem{CartID: 2, ProductVariantID: 3, Quantity: 4}); err != nil {
		t.Fatalf("CreateCartItem: %v", err)
	}

	want := []string{"PATCH /cart-items/1", "DELETE /cart-items/1", "POST /user/9/cart/cart-item"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("Expected calls %v, got %v", want, calls)
	}
}
