package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/api/middleware"
	checkoutsvc "github.com/rainadr/kasirkopi-backend/internal/checkout"
	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

type stubCheckoutService struct {
	gotInput checkoutsvc.CheckoutInput
	result   *checkoutsvc.CheckoutResult
	err      error
	calls    int
}

func (s *stubCheckoutService) Checkout(ctx context.Context, input checkoutsvc.CheckoutInput) (*checkoutsvc.CheckoutResult, error) {
	s.calls++
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &checkoutsvc.CheckoutResult{Order: &models.Order{Number: 1}}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestCheckoutRejectsMissingEmployeeContext(t *testing.T) {
	stub := &stubCheckoutService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	Checkout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if stub.calls != 0 {
		t.Fatalf("service should not be called")
	}
}

func TestCheckoutForwardsCartAndIdempotencyKey(t *testing.T) {
	stub := &stubCheckoutService{}
	employeeID := uuid.New()
	productID := uuid.New()

	body := `{
		"customer_name": "Budi",
		"items": [{"product_id": "` + productID.String() + `", "qty": 2, "note": "less sugar"}],
		"discount_type": "percentage",
		"discount_value": 10,
		"payment_method": "cash",
		"cash_tendered": 50000
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "register-1-0001")
	ctx := middleware.WithEmployeeID(req.Context(), employeeID.String())
	ctx = middleware.WithEmployeeName(ctx, "Dewi")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	Checkout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.gotInput.EmployeeID != employeeID {
		t.Fatalf("expected employee id from context")
	}
	if stub.gotInput.CashierName != "Dewi" {
		t.Fatalf("expected cashier name from context, got %q", stub.gotInput.CashierName)
	}
	if stub.gotInput.IdempotencyKey != "register-1-0001" {
		t.Fatalf("expected idempotency key from header, got %q", stub.gotInput.IdempotencyKey)
	}
	if len(stub.gotInput.Items) != 1 || stub.gotInput.Items[0].ProductID != productID || stub.gotInput.Items[0].Qty != 2 {
		t.Fatalf("unexpected cart items %+v", stub.gotInput.Items)
	}
	if stub.gotInput.CashTendered == nil || *stub.gotInput.CashTendered != 50000 {
		t.Fatalf("expected cash tendered 50000")
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	stub := &stubCheckoutService{}
	body := `{
		"customer_name": "Budi",
		"items": [{"product_id": "` + uuid.NewString() + `", "qty": 1}],
		"payment_method": "kredit"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req = req.WithContext(middleware.WithEmployeeID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	Checkout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if stub.calls != 0 {
		t.Fatalf("service should not be called on invalid input")
	}
}

func TestCheckoutRejectsUnknownFields(t *testing.T) {
	stub := &stubCheckoutService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"surprise": true}`))
	req = req.WithContext(middleware.WithEmployeeID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	Checkout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestCheckoutWritesResultEnvelope(t *testing.T) {
	stub := &stubCheckoutService{
		result: &checkoutsvc.CheckoutResult{
			Order:       &models.Order{Number: 41},
			ReceiptText: "KOPI KITA",
			Warnings:    []string{"printer offline; receipt not printed"},
		},
	}
	body := `{
		"customer_name": "Sari",
		"items": [{"product_id": "` + uuid.NewString() + `", "qty": 1}],
		"pay_later": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req = req.WithContext(middleware.WithEmployeeID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	Checkout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var envelope struct {
		Data struct {
			ReceiptText string   `json:"ReceiptText"`
			Warnings    []string `json:"Warnings"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ReceiptText != "KOPI KITA" {
		t.Fatalf("expected receipt text in payload, got %q", envelope.Data.ReceiptText)
	}
	if len(envelope.Data.Warnings) != 1 {
		t.Fatalf("expected warning passthrough, got %v", envelope.Data.Warnings)
	}
}
