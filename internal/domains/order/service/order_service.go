package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartModel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/pkg/logger"
)

const DefaultNotifyTimeout = 5 * time.Second

// Config carries the notification settings of the order flow.
type Config struct {
	// AdminRecipient receives new-order summaries; empty disables notification.
	AdminRecipient string
	NotifyTimeout  time.Duration
}

type orderService struct {
	repo     repository.OrderRepository
	notifier Notifier
	cfg      Config
	now      func() time.Time
}

func NewOrderService(repo repository.OrderRepository, notifier Notifier, cfg Config) ServiceInterface {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = DefaultNotifyTimeout
	}
	return &orderService{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// SUBMIT ORDER
// =====================================================

// SubmitOrder validates, persists and then notifies. Once the order is
// stored the call succeeds regardless of what the notifier does. Clearing the
// cart is left to the caller.
func (s *orderService) SubmitOrder(
	ctx context.Context,
	form model.CheckoutForm,
	lines []cartModel.Line,
	total decimal.Decimal,
) (*model.Order, error) {
	// 1. Validate
	form = form.Normalize()
	if err := validateSubmission(form, lines); err != nil {
		return nil, err
	}

	// 2. Snapshot before any I/O
	orderID := uuid.New()
	now := s.now()
	order := &model.Order{
		ID:              orderID,
		CustomerName:    form.CustomerName,
		CustomerPhone:   form.CustomerPhone,
		CustomerEmail:   form.CustomerEmail,
		CustomerAddress: form.CustomerAddress,
		Items:           model.SnapshotItems(orderID, lines),
		TotalPrice:      total,
		Status:          model.OrderStatusNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if form.Comment != "" {
		comment := form.Comment
		order.Comment = &comment
	}

	// 3. Persist
	if err := s.repo.Create(ctx, order); err != nil {
		logger.ErrorWithFields("Failed to create order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, apperr.Persistence(model.ErrCodePersistFailed, "failed to save order", err)
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":    order.ID,
		"total_price": order.TotalPrice.String(),
		"items":       order.ItemCount(),
	})

	// 4. Best-effort notification
	s.notifyAdmin(ctx, order)

	return order, nil
}

func validateSubmission(form model.CheckoutForm, lines []cartModel.Line) error {
	fields := map[string]string{}

	if err := form.Validate(); err != nil {
		appErr := apperr.FromValidation(model.ErrCodeInvalidOrder, "invalid order", err)
		if len(appErr.Fields) == 0 {
			return appErr
		}
		for name, msg := range appErr.Fields {
			fields[name] = msg
		}
	}
	if len(lines) == 0 {
		fields["items"] = "cart is empty"
	}

	if len(fields) > 0 {
		return apperr.Validation(model.ErrCodeInvalidOrder, "invalid order", fields)
	}
	return nil
}

// notifyAdmin never fails the caller: errors and panics are logged as
// notification errors. The notifier gets its own deadline, detached from the
// request so a client disconnect does not cut the dispatch short.
func (s *orderService) notifyAdmin(ctx context.Context, order *model.Order) {
	if s.notifier == nil || s.cfg.AdminRecipient == "" {
		logger.Warn("Order notification skipped: no notifier configured", map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()

	err := s.safeNotify(notifyCtx, model.NewSummary(order))
	if err != nil {
		notifyErr := apperr.Notification(model.ErrCodeNotificationFailed, "failed to notify administrator", err)
		logger.ErrorWithFields("Order notification failed", notifyErr, map[string]interface{}{
			"order_id":  order.ID,
			"recipient": s.cfg.AdminRecipient,
		})
	}
}

func (s *orderService) safeNotify(ctx context.Context, summary model.Summary) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	return s.notifier.Notify(ctx, s.cfg.AdminRecipient, summary)
}

// =====================================================
// ADMIN: STATUS
// =====================================================

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	// 1. Known status?
	next, err := model.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	// 2. Load current
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.classifyReadError(err)
	}

	// 3. Legal move?
	if err := model.ValidateTransition(order.Status, next); err != nil {
		return nil, err
	}

	// 4. Conditional write + history
	updated, err := s.repo.UpdateStatus(ctx, orderID, order.Status, next)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrStatusChanged):
			return nil, apperr.Persistence(model.ErrCodeConflict,
				"order status was changed by someone else, reload and retry", err)
		case errors.Is(err, model.ErrOrderNotFound):
			return nil, model.NewOrderNotFoundError()
		default:
			logger.Error("Failed to update order status", err)
			return nil, apperr.Persistence(model.ErrCodePersistFailed, "failed to update order status", err)
		}
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       next,
	})
	return updated, nil
}

// =====================================================
// ADMIN: READS
// =====================================================

func (s *orderService) ListOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error) {
	req = req.Normalize()

	orders, total, err := s.repo.List(ctx, req)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return nil, 0, apperr.Persistence(model.ErrCodePersistFailed, "failed to list orders", err)
	}
	return orders, total, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderDetailResponse, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.classifyReadError(err)
	}

	history, err := s.repo.ListHistory(ctx, orderID)
	if err != nil {
		logger.Error("Failed to load order history", err)
		return nil, apperr.Persistence(model.ErrCodePersistFailed, "failed to load order history", err)
	}

	return &model.OrderDetailResponse{
		Order:        order,
		NextStatuses: model.NextStatuses(order.Status),
		History:      history,
	}, nil
}

func (s *orderService) classifyReadError(err error) error {
	if errors.Is(err, model.ErrOrderNotFound) {
		return model.NewOrderNotFoundError()
	}
	logger.Error("Failed to load order", err)
	return apperr.Persistence(model.ErrCodePersistFailed, "failed to load order", err)
}
