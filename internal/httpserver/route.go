package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth    *AuthHTTP
	Cart    *CartHTTP
	Catalog *CatalogHTTP
	Order   *OrderHTTP
	Review  *ReviewHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/profile", d.Auth.GetProfile)
	auth.PATCH("/profile", d.Auth.UpdateProfile)
	auth.PUT("/password", d.Auth.ChangePassword)
	auth.GET("/addresses", d.Auth.ListAddresses)
	auth.POST("/addresses", d.Auth.AddAddress)
	auth.DELETE("/addresses/:id", d.Auth.RemoveAddress)

	shops := api.Group("/shops")
	shops.GET("", d.Catalog.ListShops)
	shops.POST("", d.Catalog.CreateShop)
	shops.GET("/mine", d.Catalog.ListMyShops)
	shops.GET("/:id", d.Catalog.GetShop)
	shops.PATCH("/:id", d.Catalog.UpdateShop)
	shops.GET("/:shopID/food-items", d.Catalog.ListFoodItems)
	shops.GET("/:shopID/reviews", d.Review.ListByShop)
	shops.GET("/:shopID/orders", d.Order.ListByShop)

	categories := api.Group("/categories")
	categories.GET("", d.Catalog.ListCategories)
	categories.POST("", d.Catalog.CreateCategory)
	categories.GET("/:id", d.Catalog.GetCategory)
	categories.PATCH("/:id", d.Catalog.UpdateCategory)
	categories.DELETE("/:id", d.Catalog.DeleteCategory)

	food := api.Group("/food-items")
	food.GET("", d.Catalog.ListFoodItems)
	food.POST("", d.Catalog.CreateFoodItem)
	food.GET("/search", d.Catalog.SearchFoodItems)
	food.GET("/:id", d.Catalog.GetFoodItem)
	food.PATCH("/:id", d.Catalog.UpdateFoodItem)
	food.DELETE("/:id", d.Catalog.DeleteFoodItem)

	cart := api.Group("/cart")
	cart.GET("", d.Cart.GetCart)
	cart.POST("", d.Cart.AddToCart)
	cart.DELETE("", d.Cart.Clear)
	cart.GET("/shop/:shopID", d.Cart.GetCartByShop)
	cart.DELETE("/shop/:shopID", d.Cart.ClearByShop)
	cart.PATCH("/items/:id", d.Cart.UpdateQuantity)
	cart.DELETE("/items/:id", d.Cart.Remove)

	orders := api.Group("/orders")
	orders.POST("", d.Order.Create)
	orders.GET("/mine", d.Order.ListMine)
	orders.GET("/code/:code", d.Order.GetByCode)
	orders.GET("/:id", d.Order.GetByID)
	orders.PATCH("/:id/status", d.Order.UpdateStatus)
	orders.POST("/:id/cancel", d.Order.Cancel)

	reviews := api.Group("/reviews")
	reviews.POST("", d.Review.Create)
	reviews.GET("/mine", d.Review.ListMine)
	reviews.GET("/:id", d.Review.GetByID)
	reviews.POST("/:id/reply", d.Review.Reply)
}
