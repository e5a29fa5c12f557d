package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	Wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{Wishlist: wishlist}
}

func (wc *WishlistController) Get(c *gin.Context) {
	out, err := wc.Wishlist.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type wishlistItemReq struct {
	ProductID uint `json:"productId" binding:"required"`
}

func (wc *WishlistController) Add(c *gin.Context) {
	var req wishlistItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := wc.Wishlist.Add(utils.CurrentUserID(c), req.ProductID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

func (wc *WishlistController) Remove(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	if err := wc.Wishlist.Remove(utils.CurrentUserID(c), uint(productID)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}
