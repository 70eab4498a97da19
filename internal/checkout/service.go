package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/internal/orders"
	"github.com/rainadr/kasirkopi-backend/internal/pricing"
	"github.com/rainadr/kasirkopi-backend/internal/printing"
	"github.com/rainadr/kasirkopi-backend/internal/receipt"
	"github.com/rainadr/kasirkopi-backend/pkg/config"
	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
	"github.com/rainadr/kasirkopi-backend/pkg/metrics"
	"github.com/rainadr/kasirkopi-backend/pkg/redis"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type priceSource interface {
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type stockDeductor interface {
	DeductForOrder(ctx context.Context, order *models.Order) error
}

type shiftSource interface {
	Active(ctx context.Context) (*models.Shift, error)
}

// Service commits sales at the register.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type service struct {
	ordersRepo orders.Repository
	products   priceSource
	inventory  stockDeductor
	shifts     shiftSource
	tx         txRunner
	formatter  receipt.Formatter
	printer    printing.Printer
	idem       redis.IdempotencyStore
	metrics    *metrics.CheckoutMetrics
	cfg        config.CheckoutConfig
	logg       *logger.Logger
}

// NewService builds the checkout service. The shift source, idempotency
// store, and metrics may be nil; checkout works without them.
func NewService(
	ordersRepo orders.Repository,
	products priceSource,
	inventory stockDeductor,
	shifts shiftSource,
	tx txRunner,
	formatter receipt.Formatter,
	printer printing.Printer,
	idem redis.IdempotencyStore,
	checkoutMetrics *metrics.CheckoutMetrics,
	cfg config.CheckoutConfig,
	logg *logger.Logger,
) (Service, error) {
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("price source required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory deductor required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if printer == nil {
		return nil, fmt.Errorf("printer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		ordersRepo: ordersRepo,
		products:   products,
		inventory:  inventory,
		shifts:     shifts,
		tx:         tx,
		formatter:  formatter,
		printer:    printer,
		idem:       idem,
		metrics:    checkoutMetrics,
		cfg:        cfg,
		logg:       logg,
	}, nil
}

// Checkout validates and prices the cart, commits the order, then runs
// the post-commit steps. Inventory deduction and printing are best
// effort: once the sale is committed, their failures become warnings,
// never a rollback.
//
// The idempotency key is only consumed by a committed sale. A failed
// attempt releases the key so the register can retry, and a retry of an
// already-committed sale gets the stored order back instead of an error.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	claimed, replayed, err := s.claimIdempotencyKey(ctx, input)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return replayed, nil
	}

	result, err := s.process(ctx, input)
	if err != nil {
		if claimed {
			s.releaseIdempotencyKey(ctx, input.IdempotencyKey)
		}
		return nil, err
	}
	if claimed {
		s.storeCommittedOrder(ctx, input.IdempotencyKey, result.Order.ID)
	}
	return result, nil
}

func (s *service) process(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	started := time.Now()

	items, err := s.normalizeCart(input.Items)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	lines, err := s.priceCart(ctx, items, input)
	if err != nil {
		return nil, err
	}

	totals := pricing.Quote(lines, pricing.DiscountSpec{
		Type:  input.DiscountType,
		Value: input.DiscountValue,
	})

	var change *int64
	if !input.PayLater && input.PaymentMethod == enums.PaymentMethodCash {
		changeAmount, sufficient := pricing.CashPayment(totals.Total, *input.CashTendered)
		if !sufficient {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cash tendered does not cover the total")
		}
		change = &changeAmount
	}

	order, err := s.commitOrder(ctx, input, lines, totals, change)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Order: order, CashChange: change}
	s.runPostCommit(ctx, order, input.CashierName, result)

	method := "pay_later"
	if order.PaymentMethod != nil {
		method = order.PaymentMethod.String()
	}
	s.metrics.RecordOrder(method, order.Total)
	s.metrics.ObserveDuration(time.Since(started))
	return result, nil
}

// idemPendingValue marks a key claimed by an attempt that has not
// committed yet. Once the sale commits, the value is swapped for the
// order id so retries can be answered with the committed order.
const idemPendingValue = "pending"

func (s *service) claimIdempotencyKey(ctx context.Context, input CheckoutInput) (claimed bool, replayed *CheckoutResult, err error) {
	if input.IdempotencyKey == "" || s.idem == nil {
		return false, nil, nil
	}
	redisKey := s.idem.IdempotencyKey("checkout", input.IdempotencyKey)
	claimed, err = s.idem.SetNX(ctx, redisKey, idemPendingValue, s.idempotencyTTL())
	if err != nil {
		// The store being down must not block sales.
		s.logg.Error(ctx, "idempotency store unavailable", err)
		return false, nil, nil
	}
	if claimed {
		return true, nil, nil
	}

	stored, err := s.idem.Get(ctx, redisKey)
	if err != nil {
		s.logg.Error(ctx, "reading idempotency key failed", err)
		return false, nil, pkgerrors.New(pkgerrors.CodeIdempotency, "checkout already processed for this key")
	}
	orderID, parseErr := uuid.Parse(stored)
	if parseErr != nil {
		// First attempt is still in flight.
		return false, nil, pkgerrors.New(pkgerrors.CodeIdempotency, "checkout already in progress for this key")
	}
	replayed, err = s.replayCommittedOrder(ctx, orderID, input.CashierName)
	if err != nil {
		return false, nil, err
	}
	return false, replayed, nil
}

// replayCommittedOrder answers a duplicate request with the sale that
// already went through, regenerating the receipt text from the stored
// order. No payment, stock, or print side effects run again.
func (s *service) replayCommittedOrder(ctx context.Context, orderID uuid.UUID, cashierName string) (*CheckoutResult, error) {
	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading committed order for idempotent retry")
	}
	return &CheckoutResult{
		Order:       order,
		CashChange:  order.CashChange,
		ReceiptText: s.formatter.Text(*order, order.LineItems, receipt.Options{CashierName: cashierName}),
	}, nil
}

// releaseIdempotencyKey frees the key after a failed attempt so the
// register can retry the same request.
func (s *service) releaseIdempotencyKey(ctx context.Context, key string) {
	redisKey := s.idem.IdempotencyKey("checkout", key)
	if err := s.idem.Del(ctx, redisKey); err != nil {
		s.logg.Error(ctx, "releasing idempotency key failed", err)
	}
}

func (s *service) storeCommittedOrder(ctx context.Context, key string, orderID uuid.UUID) {
	redisKey := s.idem.IdempotencyKey("checkout", key)
	if err := s.idem.Set(ctx, redisKey, orderID.String(), s.idempotencyTTL()); err != nil {
		s.logg.Error(ctx, "storing committed order for idempotency failed", err)
	}
}

func (s *service) idempotencyTTL() time.Duration {
	if s.cfg.IdempotencyTTL > 0 {
		return s.cfg.IdempotencyTTL
	}
	return 24 * time.Hour
}

// normalizeCart merges duplicate products and drops non-positive
// quantities before validation.
func (s *service) normalizeCart(items []CartItem) ([]CartItem, error) {
	merged := make([]CartItem, 0, len(items))
	index := map[uuid.UUID]int{}
	for _, item := range items {
		if item.Qty <= 0 {
			continue
		}
		if at, ok := index[item.ProductID]; ok {
			merged[at].Qty += item.Qty
			if merged[at].Note == "" {
				merged[at].Note = item.Note
			}
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	if len(merged) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return merged, nil
}

func (s *service) validate(input CheckoutInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.EmployeeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "employee id required")
	}
	if input.PayLater {
		if input.PaymentMethod != "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "pay-later orders carry no payment method")
		}
		return nil
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}
	if input.PaymentMethod == enums.PaymentMethodCash && input.CashTendered == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cash tendered required for cash payment")
	}
	return nil
}

// priceCart resolves unit prices for the selling channel. Marketplace
// orders use the channel price list and fall back to the base price.
func (s *service) priceCart(ctx context.Context, items []CartItem, input CheckoutInput) ([]pricing.LineItem, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	channel := ""
	if !input.PayLater && input.PaymentMethod.IsMarketplace() {
		channel = input.PaymentMethod.String()
	}

	lines := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown product %s", item.ProductID))
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %q is not for sale", product.Name))
		}
		lines = append(lines, pricing.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.PriceFor(channel),
			Qty:       item.Qty,
			Note:      item.Note,
		})
	}
	return lines, nil
}

func (s *service) commitOrder(
	ctx context.Context,
	input CheckoutInput,
	lines []pricing.LineItem,
	totals pricing.Totals,
	change *int64,
) (*models.Order, error) {
	now := time.Now().UTC()

	order := &models.Order{
		Status:         enums.OrderStatusPaid,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		Note:           input.Note,
		EmployeeID:     input.EmployeeID,
		Subtotal:       totals.Subtotal,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
	}
	if input.DiscountType == "" {
		order.DiscountType = enums.DiscountTypeFixed
	}
	if input.PayLater {
		order.Status = enums.OrderStatusOpen
	} else {
		method := input.PaymentMethod
		order.PaymentMethod = &method
		order.PaidAt = &now
		if method == enums.PaymentMethodCash {
			order.CashTendered = input.CashTendered
			order.CashChange = change
		}
	}

	if s.shifts != nil {
		if shift, err := s.shifts.Active(ctx); err == nil && shift != nil {
			order.ShiftID = &shift.ID
		}
	}

	for _, line := range lines {
		productID := line.ProductID
		item := models.OrderLineItem{
			ProductID: &productID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			Subtotal:  line.Subtotal(),
		}
		if line.Note != "" {
			note := line.Note
			item.Note = &note
		}
		order.LineItems = append(order.LineItems, item)
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.ordersRepo.WithTx(tx)
		number, err := repo.NextNumber(ctx)
		if err != nil {
			return err
		}
		order.Number = number
		_, err = repo.Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "committing order")
	}
	return order, nil
}

// runPostCommit performs the steps that happen after the sale is final.
// Failures here are logged and reported as warnings on the result.
func (s *service) runPostCommit(ctx context.Context, order *models.Order, cashierName string, result *CheckoutResult) {
	logCtx := s.logg.WithOrderID(ctx, order.ID.String())

	if err := s.inventory.DeductForOrder(ctx, order); err != nil {
		s.logg.Error(logCtx, "stock deduction failed after commit", err)
		result.Warnings = append(result.Warnings, "stock deduction failed; adjust inventory manually")
	}

	text := s.formatter.Text(*order, order.LineItems, receipt.Options{
		CashierName: cashierName,
	})
	result.ReceiptText = text

	if !s.printer.Connected() {
		s.logg.Warn(logCtx, "printer offline, receipt not spooled")
		s.metrics.RecordPrint(false)
		result.Warnings = append(result.Warnings, "printer offline; receipt not printed")
		return
	}
	if err := s.printer.Print(ctx, text); err != nil {
		s.logg.Error(logCtx, "receipt print failed", err)
		s.metrics.RecordPrint(false)
		result.Warnings = append(result.Warnings, "receipt print failed")
		return
	}
	s.metrics.RecordPrint(true)
}
