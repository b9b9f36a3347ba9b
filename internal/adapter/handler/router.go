package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every endpoint onto a gin engine.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	api := r.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.POST("/products", h.CreateProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.RemoveProduct)

		api.POST("/sales", h.Sell)
		api.GET("/sales", h.ListSales)
		api.DELETE("/sales", h.ClearSales)
		api.GET("/sales/export", h.ExportSales)

		api.GET("/brands", h.ListBrands)
	}

	r.GET("/health", h.Health)
	return r
}
