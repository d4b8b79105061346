package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/server/http/dto"
)

// OrderHandler manages the customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/user/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	customerID := CurrentCustomerID(c)

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.ModelID == "" || req.ShippingAddress == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), customerID, req.ModelID,
		model.Size(req.Size), model.Color(req.Color), req.Scale, req.PaymentMethod, req.ShippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrQueueFull):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidSize),
			errors.Is(err, domainErrors.ErrInvalidColor),
			errors.Is(err, domainErrors.ErrInvalidScale):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	customerID := CurrentCustomerID(c)
	orders, err := h.facade.Orders(c.Request.Context(), customerID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Track handles GET /api/user/orders/:id.
func (h *OrderHandler) Track(c *gin.Context) {
	customerID := CurrentCustomerID(c)
	order, err := h.facade.TrackOrder(c.Request.Context(), c.Param("id"), customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// AdjustScale handles PATCH /api/user/orders/:id/scale.
func (h *OrderHandler) AdjustScale(c *gin.Context) {
	customerID := CurrentCustomerID(c)

	var req dto.AdjustScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AdjustOrderScale(c.Request.Context(), c.Param("id"), customerID, req.Scale)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderNotEditable):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidScale):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                order.ID,
		ModelID:           order.ModelID,
		Size:              string(order.Size),
		Color:             string(order.Color),
		Scale:             order.ScaleAdjustment,
		Price:             order.Price,
		Status:            string(order.Status),
		QueuePosition:     order.QueuePosition,
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: order.EstimatedDelivery,
		CreatedAt:         order.CreatedAt,
	}
}
