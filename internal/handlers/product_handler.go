package handlers

import (
	"log/slog"
	"slices"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	limits         services.PageLimits
	log            *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, limits services.PageLimits, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		limits:         limits,
		log:            log,
	}
}

// RegisterRoutes registers the product routes. writeGuards run before the
// mutating routes only; reads stay public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, writeGuards ...fiber.Handler) {
	products := router.Group("/products")
	products.Get("", h.HandleList)
	products.Get("/:id", h.HandleGet)
	products.Post("", slices.Concat(writeGuards, []fiber.Handler{h.HandleCreate})...)
	products.Put("/:id", slices.Concat(writeGuards, []fiber.Handler{h.HandleUpdate})...)
	products.Delete("/:id", slices.Concat(writeGuards, []fiber.Handler{h.HandleDelete})...)
}

// HandleList lists active products with optional filters and pagination.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	q, err := services.BuildProductQuery(models.ProductQueryParams{
		Category: c.Query("category"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
		Name:     c.Query("name"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	}, h.limits)
	if err != nil {
		return respondServiceError(c, h.log, err)
	}

	page, err := h.productService.ListProducts(c.UserContext(), q)
	if err != nil {
		return respondServiceError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(page.Products),
		"total":   page.Total,
		"page":    page.Page,
		"pages":   page.Pages(),
		"data":    page.Products,
	})
}

// HandleGet returns a single product, active or not.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleCreate creates a product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.DebugContext(c.UserContext(), "error parsing create request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": MsgInvalidBody,
			"error":   err.Error(),
		})
	}

	product, err := h.productService.CreateProduct(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// HandleUpdate applies a partial update.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.DebugContext(c.UserContext(), "error parsing update request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": MsgInvalidBody,
			"error":   err.Error(),
		})
	}

	product, err := h.productService.UpdateProduct(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

// HandleDelete soft-deletes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	product, err := h.productService.DeleteProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
		"data":    product,
	})
}
