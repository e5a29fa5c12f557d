package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin   *services.AdminService
	Coupons *services.CouponService
}

func NewAdminController(admin *services.AdminService, coupons *services.CouponService) *AdminController {
	return &AdminController{Admin: admin, Coupons: coupons}
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	out, err := ac.Admin.Dashboard()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

func (ac *AdminController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	users, total, err := ac.Admin.ListUsers(page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"users": users, "total": total})
}

func (ac *AdminController) ListVendors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	vendors, total, err := ac.Admin.ListVendors(page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"vendors": vendors, "total": total})
}

func (ac *AdminController) CreateCoupon(c *gin.Context) {
	var req services.CreateCouponIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	coupon, err := ac.Coupons.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, coupon)
}

func (ac *AdminController) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	coupons, total, err := ac.Coupons.List(page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"coupons": coupons, "total": total})
}

func (ac *AdminController) DeactivateCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid coupon id")
		return
	}
	if err := ac.Coupons.Deactivate(uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deactivated": true})
}
