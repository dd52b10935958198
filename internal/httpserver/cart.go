package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendora/internal/domain"
	"vendora/internal/service/cart"
)

func getCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

type addItemInput struct {
	ProductID string `json:"productId" binding:"required"`
}

func addCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		snap, err := svc.AddItem(c.Request.Context(), sessionID(c), in.ProductID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			case errors.Is(err, cart.ErrOutOfStock):
				c.JSON(http.StatusConflict, gin.H{"error": "product out of stock"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

type setQuantityInput struct {
	Quantity int `json:"quantity"`
}

func setCartQuantityHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in setQuantityInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		snap, err := svc.SetQuantity(c.Request.Context(), sessionID(c), c.Param("productId"), in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func removeCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.RemoveItem(c.Request.Context(), sessionID(c), c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func clearCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.Clear(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

type useCoinsInput struct {
	UseCoins bool `json:"useCoins"`
}

func setUseCoinsHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in useCoinsInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "useCoins required"})
			return
		}
		snap, err := svc.SetUseCoins(c.Request.Context(), sessionID(c), in.UseCoins)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
