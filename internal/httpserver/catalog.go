package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nhnamdev/food_delivery/internal/logging"
	"github.com/nhnamdev/food_delivery/internal/models"
	"github.com/nhnamdev/food_delivery/internal/service/catalog"
	"github.com/nhnamdev/food_delivery/internal/util"
)

type CatalogHTTP struct {
	Svc       *catalog.Service
	JWTSecret []byte
}

func catalogError(c echo.Context, op string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)
	switch {
	case errors.Is(err, catalog.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		l.Error("internal_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (h *CatalogHTTP) ListShops(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		shops []models.Shop
		err   error
	)
	switch {
	case c.QueryParam("category_id") != "":
		shops, err = h.Svc.ListShopsByCategory(ctx, uint(util.Atoi(c.QueryParam("category_id"))))
	case c.QueryParam("top_rated") == "true":
		shops, err = h.Svc.TopRatedShops(ctx)
	case c.QueryParam("active") == "true":
		shops, err = h.Svc.ListActiveShops(ctx)
	default:
		shops, err = h.Svc.ListShops(ctx)
	}
	if err != nil {
		return catalogError(c, "catalog.list_shops", err)
	}
	return c.JSON(http.StatusOK, shops)
}

func (h *CatalogHTTP) GetShop(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	shop, err := h.Svc.GetShop(ctx, id)
	if err != nil {
		return catalogError(c, "catalog.get_shop", err)
	}
	return c.JSON(http.StatusOK, shop)
}

func (h *CatalogHTTP) ListMyShops(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	shops, err := h.Svc.ListShopsByOwner(ctx, userID)
	if err != nil {
		return catalogError(c, "catalog.list_my_shops", err)
	}
	return c.JSON(http.StatusOK, shops)
}

func (h *CatalogHTTP) CreateShop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_shop")

	userID, err := GetUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var shop models.Shop
	if err := c.Bind(&shop); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	shop.UserID = userID

	if err := h.Svc.CreateShop(ctx, &shop); err != nil {
		return catalogError(c, "catalog.create_shop", err)
	}

	l.Info("shop_created", "shopID", shop.ID)
	return c.JSON(http.StatusCreated, shop)
}

func (h *CatalogHTTP) UpdateShop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_shop")

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var patch models.Shop
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	shop, err := h.Svc.UpdateShop(ctx, id, &patch)
	if err != nil {
		return catalogError(c, "catalog.update_shop", err)
	}

	l.Info("shop_updated", "shopID", shop.ID)
	return c.JSON(http.StatusOK, shop)
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return catalogError(c, "catalog.list_categories", err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return catalogError(c, "catalog.get_category", err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		return catalogError(c, "catalog.create_category", err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.UpdateCategory(ctx, id, req.Name, req.Description)
	if err != nil {
		return catalogError(c, "catalog.update_category", err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return catalogError(c, "catalog.delete_category", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListFoodItems(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items []models.FoodItem
		err   error
	)
	switch {
	case c.Param("shopID") != "":
		items, err = h.Svc.ListFoodItemsByShop(ctx, uint(util.Atoi(c.Param("shopID"))))
	case c.QueryParam("shop_id") != "":
		items, err = h.Svc.ListFoodItemsByShop(ctx, uint(util.Atoi(c.QueryParam("shop_id"))))
	case c.QueryParam("category_id") != "":
		items, err = h.Svc.ListFoodItemsByCategory(ctx, uint(util.Atoi(c.QueryParam("category_id"))))
	default:
		items, err = h.Svc.ListFoodItems(ctx)
	}
	if err != nil {
		return catalogError(c, "catalog.list_food_items", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetFoodItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.Svc.GetFoodItem(ctx, id)
	if err != nil {
		return catalogError(c, "catalog.get_food_item", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) CreateFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_food_item")

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}

	var item models.FoodItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.CreateFoodItem(ctx, &item); err != nil {
		return catalogError(c, "catalog.create_food_item", err)
	}

	l.Info("food_item_created", "foodItemID", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) UpdateFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_food_item")

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var patch models.FoodItem
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateFoodItem(ctx, id, &patch)
	if err != nil {
		return catalogError(c, "catalog.update_food_item", err)
	}

	l.Info("food_item_updated", "foodItemID", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) DeleteFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_food_item")

	if _, err := GetUserID(c, h.JWTSecret); err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteFoodItem(ctx, id); err != nil {
		return catalogError(c, "catalog.delete_food_item", err)
	}

	l.Info("food_item_deleted", "foodItemID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) SearchFoodItems(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}
	offset, limit := pageParams(c)

	total, items, err := h.Svc.SearchFoodItems(ctx, query, offset, limit)
	if err != nil {
		return catalogError(c, "catalog.search_food_items", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"total": total,
		"items": items,
	})
}
