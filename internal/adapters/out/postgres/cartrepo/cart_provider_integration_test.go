package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/cartrepo"
	"commerce/internal/adapters/out/postgres/productrepo"
	"commerce/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CartProviderIntegrationTestSuite provides integration tests for the cart
// provider using PostgreSQL containers.
type CartProviderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	provider  *cartrepo.GormCartProvider
}

func (suite *CartProviderIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&cartrepo.CartItemDTO{}, &productrepo.ProductDTO{}))

	suite.provider = cartrepo.NewGormCartProvider(db)
}

func (suite *CartProviderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE cart_items, products").Error)
}

func (suite *CartProviderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartProviderIntegrationTestSuite) seedProduct(name, imageURL, price string) uuid.UUID {
	dto := productrepo.ProductDTO{
		ID:            uuid.New(),
		Name:          name,
		ImageURL:      imageURL,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 100,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *CartProviderIntegrationTestSuite) seedCartItem(userID kernel.UUID, productID uuid.UUID, quantity int, createdAt time.Time) {
	dto := cartrepo.CartItemDTO{
		ID:        uuid.New(),
		UserID:    userID.Bytes(),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: createdAt,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *CartProviderIntegrationTestSuite) TestGetCart_JoinsCatalogAndTotals() {
	userID := kernel.NewUUID()
	base := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	mouseID := suite.seedProduct("Wireless Mouse", "mouse.png", "100.00")
	keyboardID := suite.seedProduct("Mechanical Keyboard", "keyboard.png", "250.50")
	suite.seedCartItem(userID, mouseID, 2, base)
	suite.seedCartItem(userID, keyboardID, 1, base.Add(time.Minute))

	snapshot, err := suite.provider.GetCart(context.Background(), userID)

	suite.Require().NoError(err)
	suite.Require().Len(snapshot.Items, 2)

	suite.Equal("Wireless Mouse", snapshot.Items[0].ProductName)
	suite.Equal("mouse.png", snapshot.Items[0].ProductImage)
	suite.Equal(2, snapshot.Items[0].Quantity)
	suite.True(snapshot.Items[0].UnitPrice.IsEqual(kernel.MustMoneyFromString("100.00")))

	suite.Equal("Mechanical Keyboard", snapshot.Items[1].ProductName)
	suite.True(snapshot.TotalAmount.IsEqual(kernel.MustMoneyFromString("450.50")))
}

func (suite *CartProviderIntegrationTestSuite) TestGetCart_EmptyCart() {
	snapshot, err := suite.provider.GetCart(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.True(snapshot.IsEmpty())
	suite.True(snapshot.TotalAmount.IsEqual(kernel.ZeroMoney()))
}

func (suite *CartProviderIntegrationTestSuite) TestGetCart_ScopesToUser() {
	base := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	mouseID := suite.seedProduct("Wireless Mouse", "mouse.png", "100.00")
	suite.seedCartItem(kernel.NewUUID(), mouseID, 1, base)

	snapshot, err := suite.provider.GetCart(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.True(snapshot.IsEmpty())
}

func (suite *CartProviderIntegrationTestSuite) TestClear_RemovesOnlyOwnRows() {
	userID := kernel.NewUUID()
	otherID := kernel.NewUUID()
	base := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	mouseID := suite.seedProduct("Wireless Mouse", "mouse.png", "100.00")
	suite.seedCartItem(userID, mouseID, 1, base)
	suite.seedCartItem(otherID, mouseID, 3, base)

	suite.Require().NoError(suite.provider.Clear(context.Background(), userID))

	var count int64
	suite.Require().NoError(suite.db.Model(&cartrepo.CartItemDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CartProviderIntegrationTestSuite) TestClear_EmptyCartIsNoOp() {
	suite.Require().NoError(suite.provider.Clear(context.Background(), kernel.NewUUID()))
}

func TestCartProviderIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(CartProviderIntegrationTestSuite))
}
