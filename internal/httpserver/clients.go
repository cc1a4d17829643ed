package httpserver

import (
	"context"
	"net/http"
	"time"

	"delivery-platform/internal/domain"
	clientsvc "delivery-platform/internal/service/client"
	"github.com/gin-gonic/gin"
)

// ClientService is the account directory consumed by the client routes.
type ClientService interface {
	Register(ctx context.Context, in clientsvc.RegisterInput) (*domain.Client, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, id int64, in clientsvc.UpdateInput) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,notblank,email,max=255"`
	Password string `json:"password" binding:"required,notblank,max=72"`
	Phone    string `json:"phone" binding:"max=64"`
	Address  string `json:"address" binding:"max=1024"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,notblank"`
	Password string `json:"password" binding:"required,max=72"`
}

// updateRequest is a merge patch: absent fields stay unchanged.
type updateRequest struct {
	Name     *string `json:"name" binding:"omitempty,notblank,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,max=72"`
	Phone    *string `json:"phone" binding:"omitempty,max=64"`
	Address  *string `json:"address" binding:"omitempty,max=1024"`
}

type clientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toClientResponse(c domain.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type clientHandlers struct {
	svc ClientService
}

func registerClientRoutes(g *gin.RouterGroup, svc ClientService) {
	h := clientHandlers{svc: svc}
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h clientHandlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	client, err := h.svc.Register(c.Request.Context(), clientsvc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(*client))
}

func (h clientHandlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	client, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientResponse(*client))
}

func (h clientHandlers) list(c *gin.Context) {
	clients, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]clientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResponse(cl))
	}
	c.JSON(http.StatusOK, out)
}

func (h clientHandlers) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientResponse(*client))
}

func (h clientHandlers) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	client, err := h.svc.Update(c.Request.Context(), id, clientsvc.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientResponse(*client))
}

func (h clientHandlers) delete(c *gin.Context) {
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
