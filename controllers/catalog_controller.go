package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/repository"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *services.CatalogService
	Reviews *services.ReviewService
}

func NewCatalogController(catalog *services.CatalogService, reviews *services.ReviewService) *CatalogController {
	return &CatalogController{Catalog: catalog, Reviews: reviews}
}

// GET /products?category=&vendorId=&q=&page=&limit=
func (cc *CatalogController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	vendorID, _ := strconv.ParseUint(c.Query("vendorId"), 10, 64)

	out, err := cc.Catalog.List(repository.ProductFilter{
		Category: c.Query("category"),
		VendorID: uint(vendorID),
		Search:   c.Query("q"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /products/:id
func (cc *CatalogController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	out, err := cc.Catalog.Detail(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /products/:id/reviews
func (cc *CatalogController) ProductReviews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	reviews, err := cc.Reviews.ListByProduct(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, reviews)
}
