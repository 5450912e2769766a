package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nhnamdev/food_delivery/internal/logging"
	"github.com/nhnamdev/food_delivery/internal/service/cart"
)

type CartHTTP struct {
	Svc       *cart.Service
	JWTSecret []byte
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) GetCartByShop(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}
	shopID, err := paramID(c, "shopID")
	if err != nil {
		return err
	}

	items, err := h.Svc.GetCartByShop(ctx, userID, shopID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		ShopID     uint `json:"shop_id"`
		FoodItemID uint `json:"food_item_id"`
		Quantity   uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ShopID, req.FoodItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, cart.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("add_to_cart_failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("add_to_cart_success", "cartItemID", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	cartID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateQuantity(ctx, cartID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	if item == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	cartID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Remove(ctx, cartID); err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	if err := h.Svc.Clear(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearByShop(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}
	shopID, err := paramID(c, "shopID")
	if err != nil {
		return err
	}

	if err := h.Svc.ClearByShop(ctx, userID, shopID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
