package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "commerce/internal/adapters/out/postgres"
	"commerce/internal/adapters/out/postgres/ordernumber"
	"commerce/internal/adapters/out/postgres/orderrepo"
	"commerce/internal/adapters/out/postgres/productrepo"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&productrepo.ProductDTO{},
		&ordernumber.CounterDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, products, order_number_counters").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedProduct(stock int) kernel.UUID {
	productID := kernel.NewUUID()
	dto := productrepo.ProductDTO{
		ID:            productID.Bytes(),
		Name:          "Wireless Mouse",
		Price:         decimal.RequireFromString("100.00"),
		StockQuantity: stock,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return productID
}

func (suite *UnitOfWorkIntegrationTestSuite) buildOrder(orderNumber string, productID kernel.UUID) *order.Order {
	placedAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	orderID := kernel.NewUUID()
	item, err := order.NewItem(
		kernel.NewUUID(), orderID, productID,
		"Wireless Mouse", "mouse.png", 2, kernel.MustMoneyFromString("100.00"),
	)
	suite.Require().NoError(err)

	totals := order.Totals{
		Subtotal:       kernel.MustMoneyFromString("200.00"),
		TaxAmount:      kernel.MustMoneyFromString("20.00"),
		DeliveryCharge: kernel.MustMoneyFromString("50.00"),
		DiscountAmount: kernel.ZeroMoney(),
		CouponDiscount: kernel.ZeroMoney(),
		TotalAmount:    kernel.MustMoneyFromString("270.00"),
	}

	aggregate, err := order.NewOrder(
		orderID, orderNumber, kernel.NewUUID(), kernel.NewUUID(),
		order.PaymentMethodCOD, "", totals, []*order.Item{item},
		placedAt, placedAt.Add(72*time.Hour),
	)
	suite.Require().NoError(err)
	return aggregate
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.StockReservation(), "First instance should provide stock reservation")
	suite.NotNil(uow1.OrderNumberGenerator(), "First instance should provide number generator")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")

	err = uow.Commit(ctx)
	suite.Require().Error(err, "Commit without active transaction should fail")
}

// TestUnitOfWork_CheckoutCommit verifies the full checkout write set commits
// together: stock decrement, number counter, order and item rows.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutCommit() {
	ctx := context.Background()
	productID := suite.seedProduct(5)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	err := uow.StockReservation().Reserve(ctx, []ports.ReservationItem{{ProductID: productID, Quantity: 2}})
	suite.Require().NoError(err)

	orderNumber, err := uow.OrderNumberGenerator().Next(ctx, time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal("ORD-20260314-00001", orderNumber)

	aggregate := suite.buildOrder(orderNumber, productID)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	var product productrepo.ProductDTO
	suite.Require().NoError(suite.db.First(&product, "id = ?", productID.Bytes()).Error)
	suite.Equal(3, product.StockQuantity)

	var orderCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Equal(int64(1), orderCount)
}

// TestUnitOfWork_CheckoutRollback verifies a failure after the stock decrement
// releases the stock, the number slot, and the order rows together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutRollback() {
	ctx := context.Background()
	productID := suite.seedProduct(5)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	err := uow.StockReservation().Reserve(ctx, []ports.ReservationItem{{ProductID: productID, Quantity: 2}})
	suite.Require().NoError(err)

	_, err = uow.OrderNumberGenerator().Next(ctx, time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC))
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	var product productrepo.ProductDTO
	suite.Require().NoError(suite.db.First(&product, "id = ?", productID.Bytes()).Error)
	suite.Equal(5, product.StockQuantity, "Rollback should restore the stock decrement")

	var counterCount int64
	suite.Require().NoError(suite.db.Model(&ordernumber.CounterDTO{}).Count(&counterCount).Error)
	suite.Equal(int64(0), counterCount, "Rollback should release the number counter row")

	var orderCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Equal(int64(0), orderCount)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
