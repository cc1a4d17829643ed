package httpserver

import (
	"context"
	"net/http"
	"time"

	"delivery-platform/internal/domain"
	ordersvc "delivery-platform/internal/service/order"
	"github.com/gin-gonic/gin"
)

// OrderService is consumed by the order routes.
type OrderService interface {
	Create(ctx context.Context, in ordersvc.Input) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id int64, in ordersvc.Input) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type orderRequest struct {
	DestinationAddress string  `json:"destinationAddress" binding:"required,notblank,max=1024"`
	Weight             float64 `json:"weight" binding:"required,gt=0"`
	DeliveryStatus     string  `json:"deliveryStatus" binding:"max=64"`
	StatusMessage      string  `json:"statusMessage" binding:"max=1024"`
}

func (r orderRequest) input() ordersvc.Input {
	return ordersvc.Input{
		DestinationAddress: r.DestinationAddress,
		Weight:             r.Weight,
		DeliveryStatus:     r.DeliveryStatus,
		StatusMessage:      r.StatusMessage,
	}
}

type orderResponse struct {
	ID                 int64     `json:"id"`
	DestinationAddress string    `json:"destinationAddress"`
	Weight             float64   `json:"weight"`
	DeliveryStatus     string    `json:"deliveryStatus"`
	StatusMessage      string    `json:"statusMessage,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:                 o.ID,
		DestinationAddress: o.DestinationAddress,
		Weight:             o.Weight,
		DeliveryStatus:     o.DeliveryStatus,
		StatusMessage:      o.StatusMessage,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

type orderHandlers struct {
	svc OrderService
}

func registerOrderRoutes(g *gin.RouterGroup, svc OrderService) {
	h := orderHandlers{svc: svc}
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h orderHandlers) create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	order, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h orderHandlers) list(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h orderHandlers) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h orderHandlers) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	order, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h orderHandlers) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
