package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/api/middleware"
	"github.com/rainadr/kasirkopi-backend/api/responses"
	"github.com/rainadr/kasirkopi-backend/api/validators"
	checkoutsvc "github.com/rainadr/kasirkopi-backend/internal/checkout"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

const idempotencyKeyHeader = "Idempotency-Key"

// Checkout rings up a cart as a committed sale.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		employeeID, err := uuid.Parse(middleware.EmployeeIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "employee context missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.EmployeeID = employeeID
		input.CashierName = middleware.EmployeeNameFromContext(r.Context())
		input.IdempotencyKey = strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))

		result, err := svc.Checkout(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type checkoutRequest struct {
	CustomerName  string                `json:"customer_name" validate:"required"`
	Note          *string               `json:"note,omitempty"`
	Items         []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountType  string                `json:"discount_type,omitempty"`
	DiscountValue float64               `json:"discount_value,omitempty" validate:"omitempty,min=0"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	CashTendered  *int64                `json:"cash_tendered,omitempty" validate:"omitempty,min=0"`
	PayLater      bool                  `json:"pay_later,omitempty"`
}

type checkoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"required,min=1"`
	Note      string `json:"note,omitempty"`
}

func (r checkoutRequest) toInput() (checkoutsvc.CheckoutInput, error) {
	items := make([]checkoutsvc.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := uuid.Parse(strings.TrimSpace(item.ProductID))
		if err != nil {
			return checkoutsvc.CheckoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		items = append(items, checkoutsvc.CartItem{
			ProductID: productID,
			Qty:       item.Qty,
			Note:      item.Note,
		})
	}

	input := checkoutsvc.CheckoutInput{
		CustomerName:  strings.TrimSpace(r.CustomerName),
		Note:          r.Note,
		Items:         items,
		DiscountValue: r.DiscountValue,
		CashTendered:  r.CashTendered,
		PayLater:      r.PayLater,
	}

	if r.DiscountType != "" {
		discountType, err := enums.ParseDiscountType(strings.TrimSpace(r.DiscountType))
		if err != nil {
			return checkoutsvc.CheckoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
		}
		input.DiscountType = discountType
	}

	if r.PaymentMethod != "" {
		method, err := enums.ParsePaymentMethod(strings.TrimSpace(r.PaymentMethod))
		if err != nil {
			return checkoutsvc.CheckoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
		}
		input.PaymentMethod = method
	}

	return input, nil
}
