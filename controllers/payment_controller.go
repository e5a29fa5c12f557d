package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// POST /payments/verify
// Called by the client after the gateway confirms the payment. A bad
// signature leaves invoices DRAFT and the cart intact.
func (pc *PaymentController) Verify(c *gin.Context) {
	var req services.VerifyPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := pc.Payments.VerifyAndFinalize(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
