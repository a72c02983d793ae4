package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// minCancellationReasonLength is the minimum length of a customer-supplied
// cancellation reason after trimming whitespace.
const minCancellationReasonLength = 10

// orderNumberPattern is the human-facing, date-scoped order number format.
var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{5}$`)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderNumberIsInvalid is returned when the order number does not match
	// the ORD-YYYYMMDD-NNNNN format.
	ErrOrderNumberIsInvalid = errors.New("order number must match the ORD-YYYYMMDD-NNNNN format")

	// ErrItemsAreRequired is returned when an order is created without line items.
	ErrItemsAreRequired = errors.New("order must contain at least one item")

	// ErrItemsDoNotMatchSubtotal is returned when the sum of the line totals
	// differs from the priced subtotal.
	ErrItemsDoNotMatchSubtotal = errors.New("sum of item totals must equal the order subtotal")

	// ErrOrderNotCancellable is returned when cancellation is requested for an
	// order that is past the cancellable statuses (Pending, Confirmed).
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")

	// ErrCancellationReasonRequired is returned when entering the Cancelled
	// status without a cancellation reason having been recorded first.
	ErrCancellationReasonRequired = errors.New("cancellation reason must be set before cancelling")
)

// Order represents a placed purchase. It is the aggregate root that manages
// the order lifecycle from placement through delivery, cancellation, or refund.
//
// Order follows these invariants:
//   - Identity, owner, address snapshot, order number, and payment method are
//     set at creation and immutable afterwards
//   - The priced totals balance exactly and are never recomputed after creation
//   - The sum of item line totals equals the subtotal
//   - Status transitions follow the Status state machine
//   - deliveredAt, cancelledAt, and cancellationReason are each set exactly once,
//     by the transition that owns them
//
// The struct uses private fields to ensure encapsulation and can only be
// created through NewOrder (fresh orders) or RestoreOrder (persistence).
type Order struct {
	// id is the opaque, immutable identifier of the order.
	id kernel.UUID

	// orderNumber is the human-facing ORD-YYYYMMDD-NNNNN identifier, assigned once.
	orderNumber string

	// userID is the owning customer, set at creation.
	userID kernel.UUID

	// addressID is a frozen snapshot reference to the delivery address.
	// Later address edits never affect a placed order.
	addressID kernel.UUID

	// status is the current state in the order lifecycle.
	status Status

	// paymentMethod is how the customer pays, fixed at creation.
	paymentMethod PaymentMethod

	// paymentStatus tracks the externally driven payment lifecycle.
	paymentStatus PaymentStatus

	// specialInstructions is free-form text supplied by the customer.
	specialInstructions string

	// totals is the priced breakdown, frozen at creation.
	totals Totals

	// items are the immutable line snapshots, one per cart line.
	items []*Item

	// estimatedDeliveryDate is computed once at placement.
	estimatedDeliveryDate time.Time

	// deliveredAt is set exactly once, by the transition into Delivered.
	deliveredAt *time.Time

	// cancelledAt is set exactly once, by the transition into Cancelled.
	cancelledAt *time.Time

	// cancellationReason is recorded before the transition into Cancelled.
	cancellationReason string

	// createdAt and updatedAt are audit timestamps.
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor.
	isConstructed bool
}

// NewOrder creates a freshly placed order in Pending status with payment
// Pending. The totals must balance, every item must belong to the order, and
// the item totals must sum to the subtotal.
//
// Parameters:
//   - id: opaque order identifier
//   - orderNumber: assigned ORD-YYYYMMDD-NNNNN number
//   - userID: owning customer
//   - addressID: frozen delivery address snapshot reference
//   - paymentMethod: one of CARD, UPI, COD, WALLET
//   - specialInstructions: optional free-form text
//   - totals: priced breakdown from the pricing calculator
//   - items: line snapshots referencing this order's id
//   - placedAt: placement instant, used for the audit timestamps
//   - estimatedDeliveryDate: placement plus the configured delivery lead
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	addressID kernel.UUID,
	paymentMethod PaymentMethod,
	specialInstructions string,
	totals Totals,
	items []*Item,
	placedAt time.Time,
	estimatedDeliveryDate time.Time,
) (*Order, error) {
	return RestoreOrder(RestoreOrderParams{
		ID:                    id,
		OrderNumber:           orderNumber,
		UserID:                userID,
		AddressID:             addressID,
		Status:                Pending,
		PaymentMethod:         paymentMethod,
		PaymentStatus:         PaymentPending,
		SpecialInstructions:   specialInstructions,
		Totals:                totals,
		Items:                 items,
		EstimatedDeliveryDate: estimatedDeliveryDate,
		CreatedAt:             placedAt,
		UpdatedAt:             placedAt,
	})
}

// RestoreOrderParams carries the full persisted state of an order for
// reconstruction by RestoreOrder.
type RestoreOrderParams struct {
	ID                    kernel.UUID
	OrderNumber           string
	UserID                kernel.UUID
	AddressID             kernel.UUID
	Status                Status
	PaymentMethod         PaymentMethod
	PaymentStatus         PaymentStatus
	SpecialInstructions   string
	Totals                Totals
	Items                 []*Item
	EstimatedDeliveryDate time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
	CancellationReason    string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistence, re-validating
// every invariant so corrupted rows never become live aggregates.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		specialInstructions:   params.SpecialInstructions,
		estimatedDeliveryDate: params.EstimatedDeliveryDate,
		deliveredAt:           params.DeliveredAt,
		cancelledAt:           params.CancelledAt,
		cancellationReason:    params.CancellationReason,
		createdAt:             params.CreatedAt,
		updatedAt:             params.UpdatedAt,
		isConstructed:         true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setOrderNumber(params.OrderNumber),
		order.setUserID(params.UserID),
		order.setAddressID(params.AddressID),
		order.setStatus(params.Status),
		order.setPaymentMethod(params.PaymentMethod),
		order.setPaymentStatus(params.PaymentStatus),
		order.setTotals(params.Totals),
	); err != nil {
		return nil, err
	}

	if err := order.setItems(params.Items); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. Call it when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's opaque identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing ORD-YYYYMMDD-NNNNN identifier.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// UserID returns the owning customer's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// AddressID returns the frozen delivery address snapshot reference.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentMethod returns how the customer pays for the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the externally driven payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// SpecialInstructions returns the customer's free-form instructions.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// Totals returns the priced breakdown frozen at creation.
func (o *Order) Totals() Totals {
	return o.totals
}

// Items returns the immutable line snapshots.
func (o *Order) Items() []*Item {
	return o.items
}

// EstimatedDeliveryDate returns the delivery estimate computed at placement.
func (o *Order) EstimatedDeliveryDate() time.Time {
	return o.estimatedDeliveryDate
}

// DeliveredAt returns the delivery instant, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns the cancellation instant, or nil while not cancelled.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancellationReason returns the recorded cancellation reason, or "" while unset.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CreatedAt returns the creation audit timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-modification audit timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to the target status, applying the side effects
// bound to the transition:
//   - entering Delivered stamps deliveredAt
//   - entering Cancelled requires the cancellation reason to already be set
//     and stamps cancelledAt
//
// Returns ErrInvalidTransition when the target is unreachable from the current
// status. Which caller may request which target is boundary policy, not a
// concern of the state machine.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if target == Cancelled && o.cancellationReason == "" {
		return ErrCancellationReasonRequired
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch target {
	case Delivered:
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	case Cancelled:
		cancelledAt := now
		o.cancelledAt = &cancelledAt
	}
	o.updatedAt = now

	return nil
}

// CanCancel reports whether the customer may still cancel the order.
// Cancellation is permitted only while the order is Pending or Confirmed.
func (o *Order) CanCancel() bool {
	return o.status == Pending || o.status == Confirmed
}

// Cancel cancels the order with the given reason. The reason is validated
// before the transition is attempted: it must be non-empty after trimming and
// at least 10 characters long. Cancelling an order that is past Confirmed
// (including one already cancelled or delivered) fails with
// ErrOrderNotCancellable; it is an error, not a no-op.
func (o *Order) Cancel(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellationReason")
	}
	if len(reason) < minCancellationReasonLength {
		return errs.NewValueIsInvalidErrorWithCause("cancellationReason",
			fmt.Errorf("reason must be at least %d characters", minCancellationReasonLength))
	}

	if !o.CanCancel() {
		return fmt.Errorf("%w: status is %s", ErrOrderNotCancellable, o.status)
	}

	o.cancellationReason = reason
	return o.TransitionTo(Cancelled, now)
}

// SetPaymentStatus records a payment lifecycle change reported by the external
// payment collaborator. The order status is never derived from it.
func (o *Order) SetPaymentStatus(status PaymentStatus, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if !orderNumberPattern.MatchString(orderNumber) {
		return fmt.Errorf("%w: %q", ErrOrderNumberIsInvalid, orderNumber)
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	itemsTotal := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.OrderID().IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %s belongs to order %s", item.ID(), item.OrderID()))
		}
		itemsTotal = itemsTotal.Add(item.TotalPrice())
	}

	if !itemsTotal.IsEqual(o.totals.Subtotal) {
		return fmt.Errorf("%w: items total %s, subtotal %s", ErrItemsDoNotMatchSubtotal, itemsTotal, o.totals.Subtotal)
	}

	o.items = items
	return nil
}
