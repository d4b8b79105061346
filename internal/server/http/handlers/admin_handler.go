package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/server/http/dto"
)

// AdminHandler serves the staff-only endpoints.
type AdminHandler struct {
	facade StorefrontFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade StorefrontFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.AdminOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toAdminOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// ChangeStatus handles POST /api/admin/orders/:id/status.
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	h.applyStatusChange(c, h.facade.ChangeOrderStatus)
}

// Override handles POST /api/admin/orders/:id/override.
func (h *AdminHandler) Override(c *gin.Context) {
	h.applyStatusChange(c, h.facade.OverrideOrderStatus)
}

func (h *AdminHandler) applyStatusChange(c *gin.Context, apply func(ctx context.Context, orderID string, next model.OrderStatus, actorID int64) (*model.Order, error)) {
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := apply(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status), CurrentCustomerID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInvalidTransition),
			errors.Is(err, domainErrors.ErrConcurrentModification):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toAdminOrderResponse(*order))
}

// Audit handles GET /api/admin/orders/:id/audit.
func (h *AdminHandler) Audit(c *gin.Context) {
	entries, err := h.facade.OrderAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.AuditEntryResponse{
			From:     string(e.From),
			To:       string(e.To),
			ActorID:  e.ActorID,
			Override: e.Override,
			At:       e.At,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Customers handles GET /api/admin/customers.
func (h *AdminHandler) Customers(c *gin.Context) {
	customers, err := h.facade.Customers(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		response = append(response, toCustomerResponse(&customers[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Customer handles GET /api/admin/customers/:id.
func (h *AdminHandler) Customer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, err := h.facade.Customer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// DisableCustomer handles POST /api/admin/customers/:id/disable.
func (h *AdminHandler) DisableCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DisableCustomer(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// Models handles GET /api/admin/models.
func (h *AdminHandler) Models(c *gin.Context) {
	models, err := h.facade.Models(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ModelResponse, 0, len(models))
	for _, m := range models {
		response = append(response, dto.ModelResponse{
			ID:        m.ID,
			CreatorID: m.CreatorID,
			Name:      m.Name,
			Source:    string(m.SourceKind),
			URLs: dto.ModelURLs{
				GLB:  m.ModelURLs.GLB,
				USDZ: m.ModelURLs.USDZ,
				FBX:  m.ModelURLs.FBX,
				OBJ:  m.ModelURLs.OBJ,
			},
			CreatedAt: m.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.QueueStats(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		InFlight:    stats.InFlight,
		Capacity:    stats.Capacity,
		Utilization: stats.Utilization,
	})
}

func toAdminOrderResponse(order model.Order) dto.AdminOrderResponse {
	return dto.AdminOrderResponse{
		OrderResponse:   toOrderResponse(order),
		CustomerID:      order.CustomerID,
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
	}
}
