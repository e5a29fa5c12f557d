package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CouponController struct {
	Coupons *services.CouponService
}

func NewCouponController(coupons *services.CouponService) *CouponController {
	return &CouponController{Coupons: coupons}
}

type validateCouponReq struct {
	Code        string `json:"code" binding:"required"`
	OrderAmount int64  `json:"orderAmount" binding:"required,min=1"`
}

// POST /coupons/validate
// Dry-run check so the client can show the discount before checkout.
func (cc *CouponController) Validate(c *gin.Context) {
	var req validateCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	quote, err := cc.Coupons.Validate(utils.CurrentUserID(c), req.Code, req.OrderAmount)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, quote)
}
