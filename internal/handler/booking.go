package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/booking"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/repository"
)

// BookingHandler exposes the booking engine over HTTP.  All booking rules
// live in the engine; these handlers only parse requests, attribute the
// actor from the JWT context and translate engine errors into status codes.
type BookingHandler struct {
	Engine       *booking.Engine
	BookingRepo  *repository.BookingRepo
	LocationRepo *repository.LocationRepo
	HistoryRepo  *repository.HistoryRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies must be
// non-nil.
func NewBookingHandler(engine *booking.Engine, bookings *repository.BookingRepo, locations *repository.LocationRepo, history *repository.HistoryRepo) *BookingHandler {
	if engine == nil || bookings == nil || locations == nil || history == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, BookingRepo: bookings, LocationRepo: locations, HistoryRepo: history}
}

// CheckAvailability handles GET /v1/locations/:id/availability.  Query
// parameters start and end are RFC3339 timestamps forming a half-open
// window; exclude optionally names a booking to ignore (re-checking an
// edit).  The response reports whether the window is free.
func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	locID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be RFC3339"})
	}
	var exclude uint64
	if raw := c.QueryParam("exclude"); raw != "" {
		if exclude, err = parseUint(raw); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude id"})
		}
	}
	conflict, err := h.Engine.HasConflict(c.Request().Context(), locID, start, end, exclude)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"location_id": locID,
		"start":       start.UTC().Format(time.RFC3339),
		"end":         end.UTC().Format(time.RFC3339),
		"available":   !conflict,
	})
}

// Create handles POST /v1/bookings.  The client ID comes from the JWT; the
// body supplies the location, window and price.  Responds 201 with the
// created booking, 409 when the window conflicts, 422 when the review gate
// blocks the user.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		LocationID uint64    `json:"location_id"`
		StartDate  time.Time `json:"start_date"`
		EndDate    time.Time `json:"end_date"`
		TotalPrice uint64    `json:"total_price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.LocationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id is required"})
	}
	b, _, err := h.Engine.CreateBooking(c.Request().Context(), booking.CreateRequest{
		LocationID: body.LocationID,
		ClientID:   userID,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
		TotalPrice: body.TotalPrice,
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// transition applies one lifecycle action on behalf of the authenticated
// actor.  The optional body carries a reason, mandatory for refunds.
func (h *BookingHandler) transition(c echo.Context, action booking.Action, requireReason bool) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	// The body is optional for most actions; ignore bind errors on empty bodies.
	_ = c.Bind(&body)
	if requireReason && body.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
	}
	b, _, err := h.Engine.Transition(c.Request().Context(), id, action, userID, isAdmin(c), body.Reason)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// Approve handles POST /v1/bookings/:id/approve.
func (h *BookingHandler) Approve(c echo.Context) error {
	return h.transition(c, booking.ActionApprove, false)
}

// Reject handles POST /v1/bookings/:id/reject.
func (h *BookingHandler) Reject(c echo.Context) error {
	return h.transition(c, booking.ActionReject, false)
}

// Cancel handles POST /v1/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, booking.ActionCancel, false)
}

// RequestRefund handles POST /v1/bookings/:id/request-refund.
func (h *BookingHandler) RequestRefund(c echo.Context) error {
	return h.transition(c, booking.ActionRequestRefund, false)
}

// Refund handles POST /v1/bookings/:id/refund.  Admin-only (enforced by
// route middleware); the reason is mandatory because it lands in the audit
// trail.
func (h *BookingHandler) Refund(c echo.Context) error {
	return h.transition(c, booking.ActionRefund, true)
}

// Get handles GET /v1/bookings/:id.  Only the booking's client, the
// location's owner or an admin may view it.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetBooking(ctx, id)
	if err != nil {
		return writeEngineError(c, err)
	}
	if b.ClientID != userID && !h.actorOwnsLocation(c, b.LocationID, userID) && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// ListMine handles GET /v1/my-bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.BookingRepo.ListByClient(c.Request().Context(), userID)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListForLocation handles GET /v1/locations/:id/bookings.  Restricted to
// the location's owner and admins.
func (h *BookingHandler) ListForLocation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	locID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	ctx := c.Request().Context()
	loc, err := h.LocationRepo.GetLocation(ctx, locID)
	if err != nil {
		return writeEngineError(c, err)
	}
	if loc.OwnerID != userID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	items, err := h.BookingRepo.ListForLocation(ctx, locID)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// History handles GET /v1/bookings/:id/history.  Admin-only (enforced by
// route middleware); returns the booking's audit trail, oldest first.
func (h *BookingHandler) History(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	// 404 for unknown bookings rather than an empty trail.
	if _, err := h.BookingRepo.GetBooking(ctx, id); err != nil {
		return writeEngineError(c, err)
	}
	items, err := h.HistoryRepo.ListByBooking(ctx, id)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// actorOwnsLocation reports whether userID owns the location.  Lookup
// failures count as not-owner; the caller falls through to 403.
func (h *BookingHandler) actorOwnsLocation(c echo.Context, locationID, userID uint64) bool {
	loc, err := h.LocationRepo.GetLocation(c.Request().Context(), locationID)
	return err == nil && loc.OwnerID == userID
}
