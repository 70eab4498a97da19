package enums

import "fmt"

// PaymentMethod describes how an order was settled at the register.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodQRIS     PaymentMethod = "qris"
	PaymentMethodGoFood   PaymentMethod = "gofood"
	PaymentMethodGrabFood PaymentMethod = "grabfood"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodQRIS,
	PaymentMethodGoFood,
	PaymentMethodGrabFood,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsMarketplace reports whether the method belongs to a delivery
// marketplace channel, which carries its own price list.
func (p PaymentMethod) IsMarketplace() bool {
	return p == PaymentMethodGoFood || p == PaymentMethodGrabFood
}

// ReceiptLabel returns the label printed on the payment row.
func (p PaymentMethod) ReceiptLabel() string {
	switch p {
	case PaymentMethodCash:
		return "Tunai"
	case PaymentMethodQRIS:
		return "QRIS"
	case PaymentMethodGoFood:
		return "GoFood"
	case PaymentMethodGrabFood:
		return "GrabFood"
	default:
		return string(p)
	}
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
