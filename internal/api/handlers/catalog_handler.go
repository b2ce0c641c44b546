package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/service"
)

type CatalogHandler struct {
	service *service.QuoteService
}

func NewCatalogHandler(service *service.QuoteService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListItems returns the catalog, optionally filtered by ?type=module,cabinet.
func (h *CatalogHandler) ListItems(c *gin.Context) {
	catalog, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	kinds := parseKinds(c.QueryArray("type"))
	if len(kinds) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": catalog, "total": len(catalog)})
		return
	}

	filtered := make(domain.Catalog, 0, len(catalog))
	for _, item := range catalog {
		if kinds[item.Kind] {
			filtered = append(filtered, item)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": filtered, "total": len(filtered)})
}

func (h *CatalogHandler) ListStock(c *gin.Context) {
	levels, err := h.service.StockLevels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": levels, "total": len(levels)})
}

// parseKinds accepts repeated params as well as comma separated lists.
func parseKinds(raw []string) map[domain.ItemKind]bool {
	kinds := make(map[domain.ItemKind]bool)
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				kinds[domain.ItemKind(part)] = true
			}
		}
	}
	return kinds
}
