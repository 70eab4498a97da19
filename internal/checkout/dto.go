package checkout

import (
	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// CartItem is one requested line before normalization.
type CartItem struct {
	ProductID uuid.UUID
	Qty       int
	Note      string
}

// CheckoutInput is a full register checkout request.
type CheckoutInput struct {
	CustomerName   string
	Note           *string
	Items          []CartItem
	DiscountType   enums.DiscountType
	DiscountValue  float64
	PaymentMethod  enums.PaymentMethod
	CashTendered   *int64
	PayLater       bool
	IdempotencyKey string
	EmployeeID     uuid.UUID
	CashierName    string
}

// CheckoutResult is the committed sale plus everything the register
// needs to finish the interaction.
type CheckoutResult struct {
	Order       *models.Order
	ReceiptText string
	CashChange  *int64
	Warnings    []string
}
