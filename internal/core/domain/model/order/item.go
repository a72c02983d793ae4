package order

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

	// ErrItemTotalPriceMismatch is returned when the persisted total price of a
	// line does not equal unit price times quantity.
	ErrItemTotalPriceMismatch = errors.New("item total price must equal unit price multiplied by quantity")
)

// Item is an immutable line-item snapshot captured from the cart at order
// placement. It references the product by id but owns its own copy of the
// product name, image, and unit price: later product edits never affect an
// already placed order.
//
// Items are append-only. They are created together with their order and are
// never individually updated or deleted afterwards.
type Item struct {
	// id is the unique identifier of the line.
	id kernel.UUID

	// orderID links the line to its owning order.
	orderID kernel.UUID

	// productID references the catalog product the line was snapshotted from.
	productID kernel.UUID

	// productName is the product name frozen at placement time.
	productName string

	// productImage is the product image reference frozen at placement time.
	productImage string

	// quantity is the number of units ordered (always positive).
	quantity int

	// unitPrice is the per-unit price frozen at placement time.
	unitPrice kernel.Money

	// totalPrice is unitPrice multiplied by quantity.
	totalPrice kernel.Money

	// isConstructed ensures the item was created via a constructor.
	isConstructed bool
}

// NewItem creates a line-item snapshot for a cart line, computing the line
// total from the unit price and quantity. Returns a validation error if any
// attribute is invalid.
func NewItem(
	id kernel.UUID,
	orderID kernel.UUID,
	productID kernel.UUID,
	productName string,
	productImage string,
	quantity int,
	unitPrice kernel.Money,
) (*Item, error) {
	return RestoreItem(id, orderID, productID, productName, productImage, quantity, unitPrice, unitPrice.MulInt(quantity))
}

// RestoreItem reconstructs a line item from persistence, verifying that the
// stored total still equals unit price times quantity.
func RestoreItem(
	id kernel.UUID,
	orderID kernel.UUID,
	productID kernel.UUID,
	productName string,
	productImage string,
	quantity int,
	unitPrice kernel.Money,
	totalPrice kernel.Money,
) (*Item, error) {
	item := &Item{
		productImage:  productImage,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	if !totalPrice.IsEqual(unitPrice.MulInt(quantity)) {
		return nil, ErrItemTotalPriceMismatch
	}
	item.totalPrice = totalPrice

	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the identifier of the owning order.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// ProductID returns the referenced catalog product identifier.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name frozen at placement time.
func (i *Item) ProductName() string {
	return i.productName
}

// ProductImage returns the product image reference frozen at placement time.
func (i *Item) ProductImage() string {
	return i.productImage
}

// Quantity returns the number of units ordered.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price frozen at placement time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice returns unit price multiplied by quantity.
func (i *Item) TotalPrice() kernel.Money {
	return i.totalPrice
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
