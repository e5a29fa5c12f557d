package controllers

import (
	"strings"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
	Payments *services.PaymentService
}

func NewCheckoutController(checkout *services.CheckoutService, payments *services.PaymentService) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Payments: payments}
}

// POST /checkout
// ONLINE mode returns a gateway order ref for the client to pay
// against; CASH is finalized immediately with payment collected at
// pickup.
func (cc *CheckoutController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	out, err := cc.Checkout.Checkout(c.Request.Context(), uid, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}

	if req.PaymentMode == entity.PayModeCash {
		fin, err := cc.Payments.FinalizeCash(c.Request.Context(), uid, out.CheckoutRef)
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.Created(c, gin.H{"checkout": out, "finalized": fin})
		return
	}

	resp.Created(c, out)
}
