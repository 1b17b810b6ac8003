package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	cartModel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/apperr"
)

// =====================================================
// FAKES
// =====================================================

type fakeRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*model.Order
	history   map[uuid.UUID][]model.OrderStatusHistory
	createErr error
	updateErr error
	created   []*model.Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:  map[uuid.UUID]*model.Order{},
		history: map[uuid.UUID][]model.OrderStatusHistory{},
	}
}

func (r *fakeRepo) Create(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	stored := *order
	stored.Items = append([]model.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &stored
	r.created = append(r.created, order)
	r.history[order.ID] = append(r.history[order.ID], model.OrderStatusHistory{
		ID: uuid.New(), OrderID: order.ID, ToStatus: order.Status, ChangedAt: order.CreatedAt,
	})
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, req model.ListOrdersRequest) ([]model.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Order
	for _, o := range r.orders {
		if req.Status == nil || o.Status == *req.Status {
			all = append(all, *o)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if req.OldestFirst {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	page, limit := req.Page, req.Limit
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.Order{}, len(all), nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to model.Status) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if o.Status != from {
		return nil, model.ErrStatusChanged
	}
	o.Status = to
	f := from
	r.history[id] = append(r.history[id], model.OrderStatusHistory{ID: uuid.New(), OrderID: id, FromStatus: &f, ToStatus: to})
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) ListHistory(_ context.Context, id uuid.UUID) ([]model.OrderStatusHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[id], nil
}

type recordingNotifier struct {
	calls     []model.Summary
	recipient string
	err       error
	panicWith interface{}
	deadline  bool
}

func (n *recordingNotifier) Notify(ctx context.Context, recipient string, summary model.Summary) error {
	if n.panicWith != nil {
		panic(n.panicWith)
	}
	_, n.deadline = ctx.Deadline()
	n.recipient = recipient
	n.calls = append(n.calls, summary)
	return n.err
}

// =====================================================
// HELPERS
// =====================================================

func validForm() model.CheckoutForm {
	return model.CheckoutForm{
		CustomerName:    "Ada Lovelace",
		CustomerPhone:   "+44 20 7946 0958",
		CustomerEmail:   "ada@example.com",
		CustomerAddress: "12 St James's Square, London",
		Comment:         "Ring twice",
	}
}

func sampleLines() []cartModel.Line {
	return []cartModel.Line{
		{ProductID: 1, Name: "iPhone 16", Price: decimal.NewFromInt(800), Quantity: 2, Memory: "256GB", Color: "black"},
		{ProductID: 2, Name: "Case", Price: decimal.NewFromInt(25), Quantity: 1},
	}
}

func newTestService(repo *fakeRepo, n Notifier) ServiceInterface {
	return NewOrderService(repo, n, Config{AdminRecipient: "admin@example.com", NotifyTimeout: time.Second})
}

// =====================================================
// SUBMIT ORDER
// =====================================================

func TestSubmitOrder_Success(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	order, err := svc.SubmitOrder(context.Background(), validForm(), sampleLines(), decimal.NewFromInt(1625))

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusNew, order.Status)
	assert.Len(t, order.Items, 2)
	assert.True(t, decimal.NewFromInt(1600).Equal(order.Items[0].Subtotal))
	assert.True(t, decimal.NewFromInt(1625).Equal(order.TotalPrice))
	require.NotNil(t, order.Comment)
	assert.Equal(t, "Ring twice", *order.Comment)
	assert.Len(t, repo.created, 1)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "admin@example.com", notifier.recipient)
	assert.Equal(t, order.ID, notifier.calls[0].OrderID)
	assert.True(t, notifier.deadline, "notifier runs under a deadline")
}

func TestSubmitOrder_EmptyEmail(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	form := validForm()
	form.CustomerEmail = ""

	order, err := svc.SubmitOrder(context.Background(), form, sampleLines(), decimal.NewFromInt(1625))

	require.Error(t, err)
	assert.Nil(t, order)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "customer_email")
	assert.Empty(t, repo.created)
	assert.Empty(t, notifier.calls)
}

func TestSubmitOrder_ListsEveryInvalidField(t *testing.T) {
	svc := newTestService(newFakeRepo(), &recordingNotifier{})

	form := model.CheckoutForm{CustomerEmail: "not-an-email", CustomerAddress: "   "}

	_, err := svc.SubmitOrder(context.Background(), form, nil, decimal.Zero)

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"customer_address", "customer_email", "customer_name", "customer_phone", "items"}, appErr.FieldNames())
}

func TestSubmitOrder_NotifierErrorIsSwallowed(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{err: errors.New("smtp: connection refused")})

	order, err := svc.SubmitOrder(context.Background(), validForm(), sampleLines(), decimal.NewFromInt(1625))

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, repo.created, 1)
}

func TestSubmitOrder_NotifierPanicIsContained(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{panicWith: "boom"})

	var (
		order *model.Order
		err   error
	)
	assert.NotPanics(t, func() {
		order, err = svc.SubmitOrder(context.Background(), validForm(), sampleLines(), decimal.NewFromInt(1625))
	})

	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestSubmitOrder_WithoutNotifier(t *testing.T) {
	repo := newFakeRepo()
	svc := NewOrderService(repo, nil, Config{})

	order, err := svc.SubmitOrder(context.Background(), validForm(), sampleLines(), decimal.NewFromInt(1625))

	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestSubmitOrder_PersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("connection reset")
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	order, err := svc.SubmitOrder(context.Background(), validForm(), sampleLines(), decimal.NewFromInt(1625))

	assert.Nil(t, order)
	assert.True(t, apperr.IsPersistence(err))
	assert.Empty(t, notifier.calls, "nothing is sent for an order that was not stored")
}

func TestSubmitOrder_SnapshotIsIndependentOfCart(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	lines := sampleLines()

	order, err := svc.SubmitOrder(context.Background(), validForm(), lines, decimal.NewFromInt(1625))
	require.NoError(t, err)

	lines[0].Quantity = 99
	lines[0].Name = "changed"
	lines = append(lines[:0], cartModel.Line{ProductID: 3})

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.Equal(t, "iPhone 16", stored.Items[0].Name)
	assert.Len(t, stored.Items, 2)
}

// =====================================================
// UPDATE STATUS
// =====================================================

func createOrder(t *testing.T, svc ServiceInterface) *model.Order {
	t.Helper()
	order, err := svc.SubmitOrder(context.Background(), validForm(), sampleLines(), decimal.NewFromInt(1625))
	require.NoError(t, err)
	return order
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	order := createOrder(t, svc)
	ctx := context.Background()

	updated, err := svc.UpdateStatus(ctx, order.ID, "processing")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, updated.Status)

	updated, err = svc.UpdateStatus(ctx, order.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, "cancelled")
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeInvalidTransition, appErr.Code)

	detail, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, detail.History, 3)
	assert.Empty(t, detail.NextStatuses)
}

func TestUpdateStatus_Errors(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	order := createOrder(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, order.ID, "shipped")
	assert.True(t, apperr.IsValidation(err), "unknown status")

	_, err = svc.UpdateStatus(ctx, uuid.New(), "processing")
	assert.True(t, apperr.IsNotFound(err), "unknown order")

	_, err = svc.UpdateStatus(ctx, order.ID, "new")
	assert.True(t, apperr.IsValidation(err), "same state")

	repo.updateErr = errors.New("disk full")
	_, err = svc.UpdateStatus(ctx, order.ID, "processing")
	assert.True(t, apperr.IsPersistence(err), "store failure")

	repo.updateErr = model.ErrStatusChanged
	_, err = svc.UpdateStatus(ctx, order.ID, "processing")
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeConflict, appErr.Code)
}

// =====================================================
// LIST / EXPORT
// =====================================================

func TestListOrders_FiltersByStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	first := createOrder(t, svc)
	createOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), first.ID, "cancelled")
	require.NoError(t, err)

	cancelled := model.OrderStatusCancelled
	orders, total, err := svc.ListOrders(context.Background(), model.ListOrdersRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)
}

func TestListOrders_OldestFirst(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ages := map[string]time.Duration{"middle": 2 * time.Hour, "newest": time.Hour, "oldest": 3 * time.Hour}
	for name, age := range ages {
		id := uuid.New()
		repo.orders[id] = &model.Order{ID: id, CustomerName: name, Status: model.OrderStatusNew, CreatedAt: base.Add(-age)}
	}

	orders, _, err := svc.ListOrders(context.Background(), model.ListOrdersRequest{Limit: 2, OldestFirst: true})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "oldest", orders[0].CustomerName)
	assert.Equal(t, "middle", orders[1].CustomerName)

	orders, _, err = svc.ListOrders(context.Background(), model.ListOrdersRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "newest", orders[0].CustomerName)
}

func TestExportOrders(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &recordingNotifier{})
	order := createOrder(t, svc)

	f, err := svc.ExportOrders(context.Background(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	orderRows, err := book.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, orderRows, 2)
	assert.Equal(t, "Order ID", orderRows[0][0])
	assert.Equal(t, order.ID.String(), orderRows[1][0])
	assert.Equal(t, "New", orderRows[1][2])

	itemRows, err := book.GetRows("Items")
	require.NoError(t, err)
	assert.Len(t, itemRows, 3)
}
