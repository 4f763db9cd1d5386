package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"staybook/internal/domain/auth"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/infra"
	"staybook/internal/infra/uow"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/dates"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=./booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

var (
	ErrPropertyNotFound        = errs.New("property not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrValidation              = errs.New("validation failed")
	ErrGuestCountExceeded      = errs.New("guest count exceeds property capacity")
	ErrMinStayNotMet           = errs.New("stay shorter than minimum required nights")
	ErrNotAllowed              = errs.New("not allowed to act on this booking")
	ErrInvalidTransition       = errs.New("invalid lifecycle transition")
	ErrAlreadyTerminal         = errs.New("booking already in a terminal state")
	ErrTransientStore          = errs.New("temporary storage conflict, retry later")
	ErrPaymentDeclined         = errs.New("payment was declined")
	ErrRefundFailed            = errs.New("refund request failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictError reports exactly which requested nights are taken so the
// caller can offer alternatives. Retrying the same range will fail again.
type ConflictError struct {
	Nights []string
}

func (e *ConflictError) Error() string {
	return "requested nights unavailable: " + strings.Join(e.Nights, ", ")
}

type CreateBookingParams struct {
	PropertyID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

type UpdateBookingParams struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Guests   *int
}

type UpdateBookingResult struct {
	Booking              *queries.BookingView
	PriceDifferenceCents int64
}

type CancelBookingResult struct {
	Booking     *queries.BookingView
	RefundCents int64
}

type BookingCommands interface {
	Create(ctx context.Context, principal auth.Principal, params CreateBookingParams) (*queries.BookingView, error)
	Update(ctx context.Context, principal auth.Principal, bookingID uuid.UUID, params UpdateBookingParams) (*UpdateBookingResult, error)
	Cancel(ctx context.Context, principal auth.Principal, bookingID uuid.UUID, reason *string) (*CancelBookingResult, error)
	ConfirmPayment(ctx context.Context, principal auth.Principal, bookingID uuid.UUID) (*queries.BookingView, error)
	Decline(ctx context.Context, principal auth.Principal, bookingID uuid.UUID) error
	Complete(ctx context.Context, principal auth.Principal, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow         shared.UnitOfWork
	views       queries.BookingReadStore
	gateway     PaymentGateway
	invalidator AvailabilityInvalidator
	clock       clock.Clock
	currency    string
}

func NewBookingCommands(
	unitOfWork shared.UnitOfWork,
	views queries.BookingReadStore,
	gateway PaymentGateway,
	invalidator AvailabilityInvalidator,
	clk clock.Clock,
	currency string,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:         unitOfWork,
		views:       views,
		gateway:     gateway,
		invalidator: invalidator,
		clock:       clk,
		currency:    currency,
	}
}

// Create is the conflict-prevention protocol: the occupancy read and the
// insert happen in one serializable unit, so no concurrent attempt can
// observe the range as free between the check and the commit.
func (c *bookingCommandsImpl) Create(ctx context.Context, principal auth.Principal, params CreateBookingParams) (*queries.BookingView, error) {
	stay, err := booking.NewStayRange(params.CheckIn, params.CheckOut, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var created *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		property, err := tx.Reads().PropertyByID(ctx, params.PropertyID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPropertyNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if params.Guests < 1 || params.Guests > property.MaxGuests {
			return ErrGuestCountExceeded
		}

		window, err := c.windowForStay(ctx, tx, property, stay, nil)
		if err != nil {
			return err
		}
		if !window.AllAvailable() {
			return &ConflictError{Nights: formatNights(window.BlockedNights)}
		}
		if stay.Nights() < window.MinStayNights {
			return ErrMinStayNotMet
		}

		snapshot := pricing.Quote(stay, property.NightlyRateCents, window, pricing.FeeSchedule{
			CleaningFeeCents: property.CleaningFeeCents,
			ServiceFeeCents:  property.ServiceFeeCents,
		}, c.currency)

		created, err = booking.NewBooking(params.PropertyID, principal.UserID, stay, params.Guests, snapshot)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		if _, err := tx.Bookings().Create(ctx, created); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		c.enqueueNotification(ctx, tx, "booking_requested", created.ID())
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := c.authorizePayment(ctx, created); err != nil {
		return nil, err
	}

	c.invalidator.InvalidateProperty(ctx, params.PropertyID)

	return c.views.FindByID(ctx, created.ID())
}

// Update re-runs the create checks with the booking's own interval treated
// as non-occupying, then replaces the snapshot wholesale and reports the
// price difference.
func (c *bookingCommandsImpl) Update(ctx context.Context, principal auth.Principal, bookingID uuid.UUID, params UpdateBookingParams) (*UpdateBookingResult, error) {
	var priceDiff int64

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := c.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if principal.Role != auth.RoleAdmin && current.GuestID() != principal.UserID {
			return ErrNotAllowed
		}
		if current.Status().IsTerminal() {
			return ErrAlreadyTerminal
		}

		checkIn := current.Stay().CheckIn()
		checkOut := current.Stay().CheckOut()
		guests := current.Guests()
		if params.CheckIn != nil {
			checkIn = *params.CheckIn
		}
		if params.CheckOut != nil {
			checkOut = *params.CheckOut
		}
		if params.Guests != nil {
			guests = *params.Guests
		}

		stay, err := booking.NewStayRange(checkIn, checkOut, c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		property, err := tx.Reads().PropertyByID(ctx, current.PropertyID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if guests < 1 || guests > property.MaxGuests {
			return ErrGuestCountExceeded
		}

		ownID := current.ID()
		window, err := c.windowForStay(ctx, tx, property, stay, &ownID)
		if err != nil {
			return err
		}
		if !window.AllAvailable() {
			return &ConflictError{Nights: formatNights(window.BlockedNights)}
		}
		if stay.Nights() < window.MinStayNights {
			return ErrMinStayNotMet
		}

		fresh := pricing.Quote(stay, property.NightlyRateCents, window, pricing.FeeSchedule{
			CleaningFeeCents: property.CleaningFeeCents,
			ServiceFeeCents:  property.ServiceFeeCents,
		}, c.currency)

		old, err := current.Reprice(stay, guests, fresh)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}
		priceDiff = pricing.Diff(old, fresh)

		if err := tx.Bookings().ReplaceSnapshot(ctx, current); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		c.enqueueNotification(ctx, tx, "booking_updated", current.ID())
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	view, err := c.views.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	c.invalidator.InvalidateProperty(ctx, view.PropertyID)

	return &UpdateBookingResult{Booking: view, PriceDifferenceCents: priceDiff}, nil
}

// Cancel routes through the refund evaluator, the only path allowed to
// assign the cancelled statuses. The refund call happens after the
// terminal transition commits; a gateway failure leaves the cancellation
// standing and surfaces as a retryable refund error.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, principal auth.Principal, bookingID uuid.UUID, reason *string) (*CancelBookingResult, error) {
	var (
		outcome     pricing.CancellationOutcome
		propertyID  uuid.UUID
		intentRef   *string
		freedNights bool
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := c.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		property, err := tx.Reads().PropertyByID(ctx, current.PropertyID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		actorIsHost := principal.ActsAsHost(property.HostID)
		if !actorIsHost && current.GuestID() != principal.UserID {
			return ErrNotAllowed
		}

		outcome, err = pricing.EvaluateCancellation(current, actorIsHost, c.clock.Now())
		if err != nil {
			if errors.Is(err, pricing.ErrAlreadyTerminal) {
				return ErrAlreadyTerminal
			}
			return err
		}

		from := current.Status()
		freedNights = current.Occupies()
		if err := current.TransitionTo(outcome.NewStatus); err != nil {
			return ErrInvalidTransition
		}
		if reason != nil {
			current.SetCancelReason(*reason)
		}

		if err := tx.Bookings().UpdateStatus(ctx, current.ID(), from, outcome.NewStatus, current.CancelReason()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		propertyID = current.PropertyID()
		intentRef = current.PaymentIntentRef()

		c.enqueueNotification(ctx, tx, "booking_cancelled", current.ID())
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if freedNights {
		c.invalidator.InvalidateProperty(ctx, propertyID)
	}

	if intentRef != nil && outcome.RefundCents > 0 {
		if err := c.gateway.Refund(ctx, *intentRef, outcome.RefundCents); err != nil {
			slog.Error("refund request failed", "booking_id", bookingID, "error", err.Error())
			return nil, errs.Mark(err, ErrRefundFailed)
		}
	}

	view, err := c.views.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &CancelBookingResult{Booking: view, RefundCents: outcome.RefundCents}, nil
}

// ConfirmPayment promotes the pending hold first and only captures after
// that commits. The order matters: if the CAS loses to a concurrent
// cancellation no money has moved yet, and a declined capture rolls the
// booking over to declined in a follow-up transaction.
func (c *bookingCommandsImpl) ConfirmPayment(ctx context.Context, principal auth.Principal, bookingID uuid.UUID) (*queries.BookingView, error) {
	current, err := c.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if principal.Role != auth.RoleAdmin && current.GuestID() != principal.UserID {
		return nil, ErrNotAllowed
	}
	if err := lifecycleGuard(current, booking.StatusConfirmed); err != nil {
		return nil, err
	}
	ref := current.PaymentIntentRef()
	if ref == nil {
		return nil, ErrPaymentDeclined
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().UpdateStatus(ctx, bookingID, booking.StatusPending, booking.StatusConfirmed, nil); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		c.enqueueNotification(ctx, tx, "booking_confirmed", bookingID)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if captureErr := c.gateway.Capture(ctx, *ref); captureErr != nil {
		declineErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Bookings().UpdateStatus(ctx, bookingID, booking.StatusConfirmed, booking.StatusDeclined, nil); err != nil {
				return err
			}
			c.enqueueNotification(ctx, tx, "booking_declined", bookingID)
			return nil
		})
		if declineErr != nil {
			slog.Error("failed to decline booking after capture failure",
				"booking_id", bookingID, "error", declineErr.Error())
		}
		c.invalidator.InvalidateProperty(ctx, current.PropertyID())
		return nil, errs.Mark(captureErr, ErrPaymentDeclined)
	}

	return c.views.FindByID(ctx, bookingID)
}

// Decline is the host rejecting a pending request. The held nights free up
// immediately because only pending/confirmed statuses occupy.
func (c *bookingCommandsImpl) Decline(ctx context.Context, principal auth.Principal, bookingID uuid.UUID) error {
	var propertyID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := c.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		property, err := tx.Reads().PropertyByID(ctx, current.PropertyID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !principal.ActsAsHost(property.HostID) {
			return ErrNotAllowed
		}
		if err := lifecycleGuard(current, booking.StatusDeclined); err != nil {
			return err
		}

		if err := tx.Bookings().UpdateStatus(ctx, current.ID(), booking.StatusPending, booking.StatusDeclined, nil); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		propertyID = current.PropertyID()
		c.enqueueNotification(ctx, tx, "booking_declined", current.ID())
		return nil
	})
	if err != nil {
		return mapStoreErr(err)
	}

	c.invalidator.InvalidateProperty(ctx, propertyID)
	return nil
}

// Complete marks a confirmed booking whose checkout has passed. Purely
// informational, no refund implications.
func (c *bookingCommandsImpl) Complete(ctx context.Context, principal auth.Principal, bookingID uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := c.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		property, err := tx.Reads().PropertyByID(ctx, current.PropertyID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !principal.ActsAsHost(property.HostID) {
			return ErrNotAllowed
		}
		if err := lifecycleGuard(current, booking.StatusCompleted); err != nil {
			return err
		}
		if !current.HasCheckedOut(c.clock.Now()) {
			return ErrInvalidTransition
		}

		if err := tx.Bookings().UpdateStatus(ctx, current.ID(), booking.StatusConfirmed, booking.StatusCompleted, nil); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	return mapStoreErr(err)
}

func (c *bookingCommandsImpl) loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Reads().BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (c *bookingCommandsImpl) windowForStay(ctx context.Context, tx shared.Tx, property *shared.PropertySnapshot, stay booking.StayRange, excludeBookingID *uuid.UUID) (calendar.Window, error) {
	overrides, err := tx.Reads().OverridesForRange(ctx, property.ID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return calendar.Window{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	occupied, err := tx.Reads().OccupiedRanges(ctx, property.ID, stay.CheckIn(), stay.CheckOut(), excludeBookingID)
	if err != nil {
		return calendar.Window{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var occupiedNights []time.Time
	for _, o := range occupied {
		occupiedNights = append(occupiedNights, stay.OverlapNights(o.CheckIn, o.CheckOut)...)
	}

	return calendar.BuildWindow(stay.CheckIn(), stay.CheckOut(), property.NightlyRateCents, overrides, occupiedNights), nil
}

// authorizePayment requests an authorization for the full total after the
// booking committed. A declined authorization releases the hold.
func (c *bookingCommandsImpl) authorizePayment(ctx context.Context, created *booking.Booking) error {
	intentRef, err := c.gateway.Authorize(ctx, created.Price().TotalCents, created.Price().Currency)
	if err != nil {
		declineErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().UpdateStatus(ctx, created.ID(), booking.StatusPending, booking.StatusDeclined, nil)
		})
		if declineErr != nil {
			slog.Error("failed to decline booking after authorization failure",
				"booking_id", created.ID(), "error", declineErr.Error())
		}
		return errs.Mark(err, ErrPaymentDeclined)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().SetPaymentIntentRef(ctx, created.ID(), intentRef); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// Notification delivery is fire-and-forget: a failed enqueue is logged and
// never rolls back a lifecycle change.
func (c *bookingCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, bookingID uuid.UUID) {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		slog.Warn("failed to encode notification payload", "topic", topic, "error", err.Error())
		return
	}

	if err := tx.Notifications().CreateJob(ctx, "email", topic, payload, c.clock.Now()); err != nil {
		slog.Warn("failed to enqueue notification job", "topic", topic, "error", err.Error())
	}
}

// lifecycleGuard separates "already finished" from "wrong state" before a
// CAS is attempted; racing writers are still resolved by the CAS itself.
func lifecycleGuard(b *booking.Booking, target booking.Status) error {
	if b.Status().IsTerminal() {
		return ErrAlreadyTerminal
	}
	if !b.Status().CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	return nil
}

func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, uow.ErrMaxRetriesExceeded) {
		return errs.Mark(err, ErrTransientStore)
	}
	return err
}

func formatNights(nights []time.Time) []string {
	out := make([]string, len(nights))
	for i, n := range nights {
		out[i] = dates.Format(n)
	}
	return out
}
