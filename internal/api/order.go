package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/tomato/backend/internal/service"
)

// OrderHandler serves the menu and the simulated order flow. Order routes
// are not registered when orders is nil.
type OrderHandler struct {
	menu   service.IMenuService
	orders service.IOrderService
	log    *logrus.Logger
}

func NewOrderHandler(menu service.IMenuService, orders service.IOrderService, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{menu: menu, orders: orders, log: log}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/menu", h.Menu)
	if h.orders == nil {
		return
	}

	orders := router.Group("/orders")
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/payment", h.PayOrder)
	}
}

func (h *OrderHandler) Menu(c *gin.Context) {
	c.JSON(http.StatusOK, h.menu.Items())
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var input service.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.orders.Place(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err, "Failed to place order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) PayOrder(c *gin.Context) {
	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.orders.Pay(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.log, err, "Payment failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment successful",
		"order":   order,
	})
}
