package handler

import (
	"strconv"

	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type PackageHandler struct {
	repo repository.PackageRepository
}

func NewPackageHandler(repo repository.PackageRepository) *PackageHandler {
	return &PackageHandler{repo: repo}
}

func (h *PackageHandler) GetActive(c *fiber.Ctx) error {
	packages, err := h.repo.GetActive()
	if err != nil {
		return internalError(c, err, "Failed to fetch packages")
	}

	return c.JSON(fiber.Map{
		"message": "Packages retrieved",
		"data":    packages,
	})
}

func (h *PackageHandler) GetAll(c *fiber.Ctx) error {
	packages, err := h.repo.GetAll()
	if err != nil {
		return internalError(c, err, "Failed to fetch packages")
	}

	return c.JSON(fiber.Map{
		"message": "Packages retrieved",
		"data":    packages,
	})
}

func (h *PackageHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID"})
	}

	pkg, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
	}

	return c.JSON(fiber.Map{
		"message": "Package retrieved",
		"data":    pkg,
	})
}

type PackageRequest struct {
	PackageName   string  `json:"PackageName"`
	PaymentPeriod int     `json:"PaymentPeriod"`
	MonthlyPrice  float64 `json:"MonthlyPrice"`
	IsActive      *bool   `json:"IsActive"`
}

func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PackageName == "" || req.MonthlyPrice <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PackageName and a positive MonthlyPrice are required"})
	}

	pkg := model.Package{
		PackageName:   req.PackageName,
		PaymentPeriod: req.PaymentPeriod,
		MonthlyPrice:  req.MonthlyPrice,
		IsActive:      true,
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := h.repo.Create(&pkg); err != nil {
		return internalError(c, err, "Failed to create package")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Package created",
		"data":    pkg,
	})
}

func (h *PackageHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID"})
	}

	pkg, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
	}

	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.PackageName != "" {
		pkg.PackageName = req.PackageName
	}
	if req.PaymentPeriod != 0 {
		pkg.PaymentPeriod = req.PaymentPeriod
	}
	if req.MonthlyPrice > 0 {
		pkg.MonthlyPrice = req.MonthlyPrice
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := h.repo.Update(pkg); err != nil {
		return internalError(c, err, "Failed to update package")
	}

	return c.JSON(fiber.Map{
		"message": "Package updated",
		"data":    pkg,
	})
}

func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return internalError(c, err, "Failed to delete package")
	}

	return c.JSON(fiber.Map{"message": "Package deleted"})
}
