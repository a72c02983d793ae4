package queries_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/orderrepo"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderByIDQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderByIDQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderByIDQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderByIDQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderByIDQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderByIDQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderByIDQueryHandlerTestSuite) TestHandle_ReturnsFullDetail() {
	userID := kernel.NewUUID()
	placedAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	seeded := seedOrder(&suite.Suite, suite.orderRepo, userID, placedAt)

	query, err := queries.NewGetOrderByIDQuery(userID, seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(seeded.ID()))
	suite.Equal(seeded.OrderNumber(), result.OrderNumber)
	suite.True(result.AddressID.IsEqual(seeded.AddressID()))
	suite.Equal(order.Pending.String(), result.Status)
	suite.Equal(order.PaymentMethodCOD.String(), result.PaymentMethod)
	suite.Equal(order.PaymentPending.String(), result.PaymentStatus)
	suite.Equal("leave at the door", result.SpecialInstructions)
	suite.True(result.Totals.Subtotal.IsEqual(kernel.MustMoneyFromString("200.00")))
	suite.True(result.Totals.TaxAmount.IsEqual(kernel.MustMoneyFromString("20.00")))
	suite.True(result.Totals.DeliveryCharge.IsEqual(kernel.MustMoneyFromString("50.00")))
	suite.True(result.Totals.TotalAmount.IsEqual(kernel.MustMoneyFromString("270.00")))
	suite.Nil(result.DeliveredAt)
	suite.Nil(result.CancelledAt)
	suite.Empty(result.CancellationReason)

	suite.Require().Len(result.Items, 1)
	item := result.Items[0]
	suite.Equal("Wireless Mouse", item.ProductName)
	suite.Equal("mouse.png", item.ProductImage)
	suite.Equal(2, item.Quantity)
	suite.True(item.UnitPrice.IsEqual(kernel.MustMoneyFromString("100.00")))
	suite.True(item.TotalPrice.IsEqual(kernel.MustMoneyFromString("200.00")))
}

func (suite *GetOrderByIDQueryHandlerTestSuite) TestHandle_CancelledOrderExposesReason() {
	userID := kernel.NewUUID()
	placedAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	seeded := seedOrder(&suite.Suite, suite.orderRepo, userID, placedAt)

	suite.Require().NoError(seeded.Cancel("Ordered the wrong colour", placedAt.Add(time.Hour)))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), seeded))

	query, err := queries.NewGetOrderByIDQuery(userID, seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(order.Cancelled.String(), result.Status)
	suite.Equal("Ordered the wrong colour", result.CancellationReason)
	suite.Require().NotNil(result.CancelledAt)
}

func (suite *GetOrderByIDQueryHandlerTestSuite) TestHandle_UnknownOrder_NotFound() {
	query, err := queries.NewGetOrderByIDQuery(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderByIDQueryHandlerTestSuite) TestHandle_OtherUsersOrder_NotFound() {
	placedAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	seeded := seedOrder(&suite.Suite, suite.orderRepo, kernel.NewUUID(), placedAt)

	query, err := queries.NewGetOrderByIDQuery(kernel.NewUUID(), seeded.ID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderByIDQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(GetOrderByIDQueryHandlerTestSuite))
}
