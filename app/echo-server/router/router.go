package router

import (
	"rajwen/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/signup", handler.Signup)
	users.POST("/signin", handler.Signin)
	users.POST("/forgot-password", handler.ForgotPassword)
	users.POST("/reset-password", handler.ResetPassword)

	users.GET("/profile", handler.Profile, authRequired)
	users.POST("/logout", handler.Logout, authRequired)
}

func SetupFoodRoutes(api *echo.Group, handler *rest.FoodHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	foods := api.Group("/foods")

	foods.GET("", handler.GetAllFoods)
	foods.GET("/:id", handler.GetFoodByID)

	foods.POST("", handler.CreateFood, authRequired, adminOnly)
	foods.PUT("/:id", handler.UpdateFood, authRequired, adminOnly)
	foods.DELETE("/:id", handler.DeleteFood, authRequired, adminOnly)

	api.GET("/search/foods", handler.SearchFoods)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("", handler.CreateOrder)
	orders.GET("/my-orders", handler.GetMyOrders)
	orders.GET("/:id", handler.GetOrderByID)

	orders.GET("", handler.GetAllOrders, adminOnly)
	orders.PATCH("/:id/status", handler.UpdateOrderStatus, adminOnly)
}

func SetupPaymentsRoutes(api *echo.Group, handler *rest.PaymentsHandler, authRequired echo.MiddlewareFunc) {
	payments := api.Group("/payments", authRequired)

	payments.POST("/create-payment-intent", handler.CreatePaymentIntent)
	payments.POST("/record", handler.RecordPayment)
	payments.GET("/my-payments", handler.GetMyPayments)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	cart := api.Group("/cart", authRequired)

	cart.GET("", handler.GetCart)
	cart.POST("/items", handler.AddItem)
	cart.PATCH("/items/:foodId", handler.UpdateItem)
	cart.DELETE("/items/:foodId", handler.RemoveItem)
	cart.DELETE("", handler.ClearCart)
	cart.POST("/checkout", handler.Checkout)
}
