// Package server is the HTTP face of the reference catalog backend.
package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/dto"
	"github.com/murkotick/catalog-mirror/internal/app/catalogd/repo"
)

// Handler is a thin gin adapter over a ProductRepo.
// It validates bodies with the domain rules and maps errors to statuses.
type Handler struct {
	repo repo.ProductRepo
	log  *zap.Logger
}

func NewHandler(r repo.ProductRepo, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{repo: r, log: log}
}

// Register mounts the product routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", h.CreateProduct)
	r.PUT("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)
}

func (h *Handler) ListProducts(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProducts(items))
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var body dto.DraftDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", ErrMalformedBody, err))
		return
	}

	draft := body.ToDomain()
	if err := draft.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.repo.Create(c.Request.Context(), draft)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("product created", zap.Int64("product_id", created.ID))
	c.JSON(http.StatusCreated, dto.FromProduct(created))
}

// UpdateProduct replaces the stored product. A body without id takes the path id.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var body dto.ProductDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", ErrMalformedBody, err))
		return
	}
	if body.ID == 0 {
		body.ID = id
	}
	if body.ID != id {
		h.fail(c, ErrIDMismatch)
		return
	}

	p := body.ToDomain()
	if err := p.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(updated))
}

// DeleteProduct answers 204 for unknown ids as well.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	code := mapError(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
