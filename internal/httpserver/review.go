package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nhnamdev/food_delivery/internal/logging"
	"github.com/nhnamdev/food_delivery/internal/service/review"
)

type ReviewHTTP struct {
	Svc       *review.Service
	JWTSecret []byte
}

func reviewError(c echo.Context, op string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)
	switch {
	case errors.Is(err, review.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, review.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, review.ErrPrecondition):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		l.Error("internal_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		OrderID uint   `json:"order_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
		Images  string `json:"images"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	r, err := h.Svc.Create(ctx, req.OrderID, userID, req.Rating, req.Comment, req.Images)
	if err != nil {
		return reviewError(c, "review.create", err)
	}

	l.Info("review_created", "reviewID", r.ID, "orderID", r.OrderID)
	return c.JSON(http.StatusCreated, r)
}

func (h *ReviewHTTP) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	r, err := h.Svc.ByID(ctx, id)
	if err != nil {
		return reviewError(c, "review.get", err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHTTP) ListByShop(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, err := paramID(c, "shopID")
	if err != nil {
		return err
	}

	reviews, err := h.Svc.ListByShop(ctx, shopID)
	if err != nil {
		return reviewError(c, "review.list_by_shop", err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	reviews, err := h.Svc.ListByCustomer(ctx, userID)
	if err != nil {
		return reviewError(c, "review.list_mine", err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHTTP) Reply(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.reply")

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Reply string `json:"reply"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	r, err := h.Svc.AddShopReply(ctx, id, req.Reply)
	if err != nil {
		return reviewError(c, "review.reply", err)
	}

	l.Info("review_replied", "reviewID", r.ID)
	return c.JSON(http.StatusOK, r)
}
