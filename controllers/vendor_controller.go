package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type VendorController struct {
	Vendors *services.VendorService
}

func NewVendorController(vendors *services.VendorService) *VendorController {
	return &VendorController{Vendors: vendors}
}

func (vc *VendorController) Become(c *gin.Context) {
	var req services.BecomeVendorIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	vendor, err := vc.Vendors.BecomeVendor(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, vendor)
}

func (vc *VendorController) Profile(c *gin.Context) {
	vendor, err := vc.Vendors.Profile(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, vendor)
}

func (vc *VendorController) MyProducts(c *gin.Context) {
	products, err := vc.Vendors.MyProducts(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, products)
}

func (vc *VendorController) CreateProduct(c *gin.Context) {
	var req services.ProductIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := vc.Vendors.CreateProduct(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, p)
}

type updateProductReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

func (vc *VendorController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := vc.Vendors.UpdateProduct(utils.CurrentUserID(c), uint(id), updates); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

type setInventoryReq struct {
	TotalQty int `json:"totalQty" binding:"min=0"`
}

func (vc *VendorController) SetInventory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	var req setInventoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := vc.Vendors.SetInventory(utils.CurrentUserID(c), uint(id), req.TotalQty); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

type setPricingReq struct {
	Unit  string `json:"unit" binding:"required,oneof=HOUR DAY WEEK"`
	Price int64  `json:"price" binding:"required,min=1"`
}

func (vc *VendorController) SetPricing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	var req setPricingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := vc.Vendors.SetPricing(utils.CurrentUserID(c), uint(id), req.Unit, req.Price); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}
