package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vendora/internal/domain"
	"vendora/internal/service/curation"
	"vendora/internal/service/gate"
	"vendora/internal/service/view"
)

func storefrontHandler(gateSvc *gate.Service, counter *view.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		sf, err := gateSvc.Storefront(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// View registration only for pages that actually render a
		// storefront; a locked or banned page is not a view.
		if sf.Visibility == domain.VisibilityActive {
			counter.Register(c.Request.Context(), sessionID(c), sf.Store.ID)
		}

		c.JSON(http.StatusOK, toStorefrontResponse(*sf))
	}
}

func marketplaceHandler(svc *curation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		perStoreCap := intQuery(c, "perStoreCap")
		totalCap := intQuery(c, "totalCap")

		products, err := svc.Marketplace(c.Request.Context(), perStoreCap, totalCap)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": toMarketplaceItems(products)})
	}
}

func landingHandler(svc *curation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.LandingSample(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": toMarketplaceItems(products)})
	}
}

func intQuery(c *gin.Context, key string) int {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
