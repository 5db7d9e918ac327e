package handler

import (
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AllocationHandler struct {
	repo repository.AllocationRepository
}

func NewAllocationHandler(repo repository.AllocationRepository) *AllocationHandler {
	return &AllocationHandler{repo: repo}
}

func (h *AllocationHandler) GetAll(c *fiber.Ctx) error {
	allocations, err := h.repo.GetAll()
	if err != nil {
		return internalError(c, err, "Failed to fetch allocations")
	}

	return c.JSON(fiber.Map{
		"message": "Allocations retrieved",
		"data":    allocations,
	})
}

func (h *AllocationHandler) GetByID(c *fiber.Ctx) error {
	allocation, err := h.repo.FindByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Allocation not found"})
	}

	return c.JSON(fiber.Map{
		"message": "Allocation retrieved",
		"data":    allocation,
	})
}

type AllocationRequest struct {
	AllocationID      string  `json:"AllocationID"`
	StaffCategory     string  `json:"StaffCategory"`
	AirtimeAllocation float64 `json:"AirtimeAllocation"`
	HandsetAllocation float64 `json:"HandsetAllocation"`
}

func (h *AllocationHandler) Create(c *fiber.Ctx) error {
	var req AllocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AllocationID == "" || req.StaffCategory == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "AllocationID and StaffCategory are required"})
	}

	allocation := model.Allocation{
		AllocationID:      req.AllocationID,
		StaffCategory:     req.StaffCategory,
		AirtimeAllocation: req.AirtimeAllocation,
		HandsetAllocation: req.HandsetAllocation,
	}
	if err := h.repo.Create(&allocation); err != nil {
		return internalError(c, err, "Failed to create allocation")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Allocation created",
		"data":    allocation,
	})
}

func (h *AllocationHandler) Update(c *fiber.Ctx) error {
	allocation, err := h.repo.FindByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Allocation not found"})
	}

	var req AllocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.StaffCategory != "" {
		allocation.StaffCategory = req.StaffCategory
	}
	if req.AirtimeAllocation > 0 {
		allocation.AirtimeAllocation = req.AirtimeAllocation
	}
	if req.HandsetAllocation > 0 {
		allocation.HandsetAllocation = req.HandsetAllocation
	}

	if err := h.repo.Update(allocation); err != nil {
		return internalError(c, err, "Failed to update allocation")
	}

	return c.JSON(fiber.Map{
		"message": "Allocation updated",
		"data":    allocation,
	})
}

func (h *AllocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Params("id")); err != nil {
		return internalError(c, err, "Failed to delete allocation")
	}

	return c.JSON(fiber.Map{"message": "Allocation deleted"})
}
