package enums

import "fmt"

// StockMovementType classifies an entry in the ingredient stock ledger.
// Shortage rows record deductions that were clamped at zero because the
// sale was already final when stock ran out.
type StockMovementType string

const (
	StockMovementTypeSale       StockMovementType = "sale"
	StockMovementTypeRestock    StockMovementType = "restock"
	StockMovementTypeAdjustment StockMovementType = "adjustment"
	StockMovementTypeShortage   StockMovementType = "shortage"
)

var validStockMovementTypes = []StockMovementType{
	StockMovementTypeSale,
	StockMovementTypeRestock,
	StockMovementTypeAdjustment,
	StockMovementTypeShortage,
}

// String implements fmt.Stringer.
func (m StockMovementType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known StockMovementType.
func (m StockMovementType) IsValid() bool {
	for _, candidate := range validStockMovementTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseStockMovementType converts raw input into a StockMovementType.
func ParseStockMovementType(value string) (StockMovementType, error) {
	for _, candidate := range validStockMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock movement type %q", value)
}
