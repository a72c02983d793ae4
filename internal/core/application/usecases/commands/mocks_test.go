package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetForUser(ctx context.Context, userID, orderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStockReservation struct{ mock.Mock }

func (m *MockStockReservation) Reserve(ctx context.Context, items []ports.ReservationItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

type MockOrderNumberGenerator struct{ mock.Mock }

func (m *MockOrderNumberGenerator) Next(ctx context.Context, day time.Time) (string, error) {
	args := m.Called(ctx, day)
	return args.String(0), args.Error(1)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockCheckoutUoW) StockReservation() ports.StockReservation {
	args := m.Called()
	return args.Get(0).(ports.StockReservation)
}
func (m *MockCheckoutUoW) OrderNumberGenerator() ports.OrderNumberGenerator {
	args := m.Called()
	return args.Get(0).(ports.OrderNumberGenerator)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCartProvider struct{ mock.Mock }

func (m *MockCartProvider) GetCart(ctx context.Context, userID kernel.UUID) (ports.CartSnapshot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.CartSnapshot), args.Error(1)
}
func (m *MockCartProvider) Clear(ctx context.Context, userID kernel.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAddressProvider struct{ mock.Mock }

func (m *MockAddressProvider) FindForUser(ctx context.Context, userID, addressID kernel.UUID) (ports.Address, error) {
	args := m.Called(ctx, userID, addressID)
	return args.Get(0).(ports.Address), args.Error(1)
}

type MockCouponValidator struct{ mock.Mock }

func (m *MockCouponValidator) Apply(
	ctx context.Context, code string, subtotal kernel.Money, items []ports.CartItem,
) (ports.CouponResult, error) {
	args := m.Called(ctx, code, subtotal, items)
	return args.Get(0).(ports.CouponResult), args.Error(1)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) NotifyStatusChange(
	ctx context.Context, userID, orderID kernel.UUID, newStatus order.Status,
) error {
	args := m.Called(ctx, userID, orderID, newStatus)
	return args.Error(0)
}

var errBoom = errors.New("boom")

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	placedAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	orderID := kernel.NewUUID()
	item, err := order.NewItem(
		kernel.NewUUID(), orderID, kernel.NewUUID(),
		"Wireless Mouse", "mouse.png", 2, kernel.MustMoneyFromString("100.00"),
	)
	if err != nil {
		t.Fatalf("building test item: %v", err)
	}

	totals := order.Totals{
		Subtotal:       kernel.MustMoneyFromString("200.00"),
		TaxAmount:      kernel.MustMoneyFromString("20.00"),
		DeliveryCharge: kernel.MustMoneyFromString("50.00"),
		DiscountAmount: kernel.ZeroMoney(),
		CouponDiscount: kernel.ZeroMoney(),
		TotalAmount:    kernel.MustMoneyFromString("270.00"),
	}

	aggregate, err := order.NewOrder(
		orderID, "ORD-20260314-00042", kernel.NewUUID(), kernel.NewUUID(),
		order.PaymentMethodCOD, "", totals, []*order.Item{item},
		placedAt, placedAt.Add(72*time.Hour),
	)
	if err != nil {
		t.Fatalf("building test order: %v", err)
	}
	return aggregate
}
