package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"popflix/services"
)

type CatalogHandler struct {
	catalog *services.Catalog
}

func NewCatalogHandler(catalog *services.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) PopularMovies(c *gin.Context) {
	movies, err := h.catalog.PopularMovies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": movies})
}

func (h *CatalogHandler) PopularTV(c *gin.Context) {
	shows, err := h.catalog.PopularTV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": shows})
}

func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	results, err := h.catalog.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
