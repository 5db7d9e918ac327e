package handler

import (
	"strconv"
	"time"

	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports   repository.ReportRepository
	staff     repository.StaffRepository
	handsets  repository.HandsetRepository
	contracts repository.ContractRepository
}

func NewReportHandler(
	reports repository.ReportRepository,
	staff repository.StaffRepository,
	handsets repository.HandsetRepository,
	contracts repository.ContractRepository,
) *ReportHandler {
	return &ReportHandler{reports: reports, staff: staff, handsets: handsets, contracts: contracts}
}

// Summary is the management dashboard: headcount, workflow load and benefit
// spend in one response.
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	staffCount, err := h.staff.Count()
	if err != nil {
		return internalError(c, err, "Failed to count staff")
	}
	handsetCount, err := h.handsets.Count()
	if err != nil {
		return internalError(c, err, "Failed to count handset requests")
	}
	handsetsByStatus, err := h.handsets.CountByStatus()
	if err != nil {
		return internalError(c, err, "Failed to count handset statuses")
	}
	contractsByStatus, err := h.contracts.CountByApprovalStatus()
	if err != nil {
		return internalError(c, err, "Failed to count contracts")
	}
	handsetSpend, err := h.reports.TotalHandsetSpend()
	if err != nil {
		return internalError(c, err, "Failed to total handset spend")
	}
	contractValue, err := h.reports.TotalMonthlyContractValue()
	if err != nil {
		return internalError(c, err, "Failed to total contract value")
	}

	return c.JSON(fiber.Map{
		"message": "Summary retrieved",
		"data": fiber.Map{
			"ActiveStaff":               staffCount,
			"HandsetRequests":           handsetCount,
			"HandsetsByStatus":          handsetsByStatus,
			"ContractsByApprovalStatus": contractsByStatus,
			"TotalHandsetSpend":         handsetSpend,
			"MonthlyContractValue":      contractValue,
		},
	})
}

func (h *ReportHandler) StaffByDepartment(c *fiber.Ctx) error {
	rows, err := h.reports.StaffByDepartment()
	if err != nil {
		return internalError(c, err, "Failed to fetch department breakdown")
	}

	return c.JSON(fiber.Map{
		"message": "Department breakdown retrieved",
		"data":    rows,
	})
}

func (h *ReportHandler) MonthlyHandsetRequests(c *fiber.Ctx) error {
	year, ok := yearParam(c)
	if !ok {
		return nil
	}

	rows, err := h.reports.HandsetRequestsByMonth(year)
	if err != nil {
		return internalError(c, err, "Failed to fetch monthly totals")
	}

	return c.JSON(fiber.Map{
		"message": "Monthly handset requests retrieved",
		"data":    rows,
	})
}

func (h *ReportHandler) MonthlyContracts(c *fiber.Ctx) error {
	year, ok := yearParam(c)
	if !ok {
		return nil
	}

	rows, err := h.reports.ContractsByMonth(year)
	if err != nil {
		return internalError(c, err, "Failed to fetch monthly totals")
	}

	return c.JSON(fiber.Map{
		"message": "Monthly contracts retrieved",
		"data":    rows,
	})
}

func (h *ReportHandler) HandsetSpendByDepartment(c *fiber.Ctx) error {
	rows, err := h.reports.HandsetSpendByDepartment()
	if err != nil {
		return internalError(c, err, "Failed to fetch spend breakdown")
	}

	return c.JSON(fiber.Map{
		"message": "Handset spend by department retrieved",
		"data":    rows,
	})
}

func (h *ReportHandler) PackageUtilization(c *fiber.Ctx) error {
	rows, err := h.reports.PackageUtilization()
	if err != nil {
		return internalError(c, err, "Failed to fetch package utilization")
	}

	return c.JSON(fiber.Map{
		"message": "Package utilization retrieved",
		"data":    rows,
	})
}

// yearParam reads the ?year query, defaulting to the current year. When the
// value is malformed the 400 response has already been written.
func yearParam(c *fiber.Ctx) (int, bool) {
	year := time.Now().Year()
	if value := c.Query("year"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
			return 0, false
		}
		year = parsed
	}
	return year, true
}
