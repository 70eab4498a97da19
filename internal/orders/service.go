package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/internal/pricing"
	"github.com/rainadr/kasirkopi-backend/internal/printing"
	"github.com/rainadr/kasirkopi-backend/internal/receipt"
	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
	"github.com/rainadr/kasirkopi-backend/pkg/metrics"
	"github.com/rainadr/kasirkopi-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SettleInput pays off an open (pay-later) order.
type SettleInput struct {
	PaymentMethod enums.PaymentMethod
	CashTendered  *int64
}

// SettleResult carries the paid order plus cash change when applicable.
type SettleResult struct {
	Order      *models.Order
	CashChange *int64
}

// Service exposes read, settle, and reprint operations on committed
// orders. Order creation lives in the checkout service.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	Settle(ctx context.Context, id uuid.UUID, input SettleInput) (*SettleResult, error)
	Void(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Reprint(ctx context.Context, id uuid.UUID, cashierName string) (string, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	formatter receipt.Formatter
	printer   printing.Printer
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
}

// NewService builds the orders service.
func NewService(
	repo Repository,
	tx txRunner,
	formatter receipt.Formatter,
	printer printing.Printer,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
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
		repo:      repo,
		tx:        tx,
		formatter: formatter,
		printer:   printer,
		metrics:   checkoutMetrics,
		logg:      logg,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return list, nil
}

// Settle pays off an open tab. Cash settlements must cover the total;
// change is computed here, never by the caller.
func (s *service) Settle(ctx context.Context, id uuid.UUID, input SettleInput) (*SettleResult, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}

	var result *SettleResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if order.Status != enums.OrderStatusOpen {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order is %s, not open", order.Status))
		}

		now := time.Now().UTC()
		method := input.PaymentMethod
		updates := map[string]any{
			"status":         enums.OrderStatusPaid,
			"payment_method": method,
			"paid_at":        now,
		}

		var change *int64
		if method == enums.PaymentMethodCash {
			if input.CashTendered == nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "cash tendered required for cash settlement")
			}
			changeAmount, sufficient := pricing.CashPayment(order.Total, *input.CashTendered)
			if !sufficient {
				return pkgerrors.New(pkgerrors.CodeValidation, "cash tendered does not cover the total")
			}
			updates["cash_tendered"] = *input.CashTendered
			updates["cash_change"] = changeAmount
			change = &changeAmount
			order.CashTendered = input.CashTendered
			order.CashChange = &changeAmount
		}

		if err := repo.Update(ctx, order.ID, updates); err != nil {
			return err
		}
		order.Status = enums.OrderStatusPaid
		order.PaymentMethod = &method
		order.PaidAt = &now
		result = &SettleResult{Order: order, CashChange: change}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settling order")
	}

	s.metrics.RecordOrder(result.Order.PaymentMethod.String(), result.Order.Total)
	return result, nil
}

// Void cancels an order. Paid orders stay in reports as voided rows;
// stock already deducted is not returned automatically.
func (s *service) Void(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var voided *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if order.Status == enums.OrderStatusVoid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already voided")
		}
		if err := repo.Update(ctx, order.ID, map[string]any{
			"status": enums.OrderStatusVoid,
		}); err != nil {
			return err
		}
		order.Status = enums.OrderStatusVoid
		voided = order
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "voiding order")
	}
	return voided, nil
}

// Reprint renders the receipt again with a copy label and spools it.
// The rendered text is returned so the caller can show it even when the
// printer is offline.
func (s *service) Reprint(ctx context.Context, id uuid.UUID, cashierName string) (string, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	text := s.formatter.Text(*order, order.LineItems, receipt.Options{
		CopyLabel:   "SALINAN",
		CashierName: cashierName,
	})

	if !s.printer.Connected() {
		s.metrics.RecordPrint(false)
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Warn(logCtx, "printer offline, reprint rendered but not spooled")
		return text, nil
	}
	if err := s.printer.Print(ctx, text); err != nil {
		s.metrics.RecordPrint(false)
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Error(logCtx, "reprint failed", err)
		return text, nil
	}
	s.metrics.RecordPrint(true)
	return text, nil
}
