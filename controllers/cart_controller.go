package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

func (cc *CartController) Get(c *gin.Context) {
	out, err := cc.Cart.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

func (cc *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !req.RentalEnd.After(req.RentalStart) {
		resp.BadRequest(c, "rentalEnd must be after rentalStart")
		return
	}
	if err := cc.Cart.Add(utils.CurrentUserID(c), &req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

type updateQtyReq struct {
	Qty int `json:"qty"`
}

func (cc *CartController) UpdateQty(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}
	var req updateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.Cart.UpdateQty(utils.CurrentUserID(c), uint(itemID), req.Qty); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

func (cc *CartController) Remove(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}
	if err := cc.Cart.RemoveItem(utils.CurrentUserID(c), uint(itemID)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

func (cc *CartController) Clear(c *gin.Context) {
	if err := cc.Cart.Clear(utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
