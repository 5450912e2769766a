package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/nhnamdev/food_delivery/internal/logging"
	"github.com/nhnamdev/food_delivery/internal/models"
	"github.com/nhnamdev/food_delivery/internal/service/order"
	"github.com/nhnamdev/food_delivery/internal/util"
)

type OrderHTTP struct {
	Engine    *order.Engine
	JWTSecret []byte
}

type orderSummary struct {
	ID          uint               `json:"id"`
	OrderCode   string             `json:"order_code"`
	CustomerID  uint               `json:"customer_id"`
	ShopID      uint               `json:"shop_id"`
	TotalAmount int64              `json:"total_amount"`
	OrderStatus models.OrderStatus `json:"order_status"`
	CreatedAt   time.Time          `json:"created_at"`
}

type orderDetail struct {
	models.Order
	HasReview bool `json:"has_review"`
}

func summarize(o models.Order, _ int) orderSummary {
	return orderSummary{
		ID:          o.ID,
		OrderCode:   o.OrderCode,
		CustomerID:  o.CustomerID,
		ShopID:      o.ShopID,
		TotalAmount: o.TotalAmount,
		OrderStatus: o.OrderStatus,
		CreatedAt:   o.CreatedAt,
	}
}

func orderError(c echo.Context, op string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)
	switch {
	case errors.Is(err, order.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrPrecondition):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		l.Error("internal_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		ShopID          uint                 `json:"shop_id"`
		DeliveryAddress string               `json:"delivery_address"`
		DeliveryPhone   string               `json:"delivery_phone"`
		DeliveryNote    string               `json:"delivery_note"`
		PaymentMethod   models.PaymentMethod `json:"payment_method"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	o, err := h.Engine.CreateFromCart(ctx, order.CreateParams{
		CustomerID:      userID,
		ShopID:          req.ShopID,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		DeliveryNote:    req.DeliveryNote,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return orderError(c, "order.create", err)
	}

	l.Info("order_created", "orderID", o.ID, "orderCode", o.OrderCode)
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHTTP) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	o, hasReview, err := h.Engine.ByID(ctx, id)
	if err != nil {
		return orderError(c, "order.get", err)
	}
	return c.JSON(http.StatusOK, orderDetail{Order: *o, HasReview: hasReview})
}

func (h *OrderHTTP) GetByCode(c echo.Context) error {
	ctx := c.Request().Context()

	o, err := h.Engine.ByCode(ctx, c.Param("code"))
	if err != nil {
		return orderError(c, "order.get_by_code", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}
	offset, limit := pageParams(c)

	orders, err := h.Engine.ListByCustomer(ctx, userID, limit, offset)
	if err != nil {
		return orderError(c, "order.list_mine", err)
	}
	return c.JSON(http.StatusOK, lo.Map(orders, summarize))
}

func (h *OrderHTTP) ListByShop(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, err := paramID(c, "shopID")
	if err != nil {
		return err
	}
	offset, limit := pageParams(c)

	orders, err := h.Engine.ListByShop(ctx, shopID, limit, offset)
	if err != nil {
		return orderError(c, "order.list_by_shop", err)
	}
	return c.JSON(http.StatusOK, lo.Map(orders, summarize))
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	o, err := h.Engine.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return orderError(c, "order.update_status", err)
	}

	l.Info("order_status_updated", "orderID", o.ID, "status", o.OrderStatus)
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	o, err := h.Engine.Cancel(ctx, id, userID, req.Reason)
	if err != nil {
		return orderError(c, "order.cancel", err)
	}

	l.Info("order_cancelled", "orderID", o.ID)
	return c.JSON(http.StatusOK, o)
}

func pageParams(c echo.Context) (offset, limit int) {
	page := util.Atoi(c.QueryParam("page"))
	size := util.Atoi(c.QueryParam("size"))
	return util.Page(page, size)
}
