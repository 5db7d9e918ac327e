package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"
	"ambasphere-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContractHandler struct {
	contracts repository.ContractRepository
	packages  repository.PackageRepository
	staff     repository.StaffRepository
	notifier  *service.Notifier
}

func NewContractHandler(
	contracts repository.ContractRepository,
	packages repository.PackageRepository,
	staff repository.StaffRepository,
	notifier *service.Notifier,
) *ContractHandler {
	return &ContractHandler{contracts: contracts, packages: packages, staff: staff, notifier: notifier}
}

type CreateContractRequest struct {
	PackageID          uint    `json:"PackageID"`
	AccountNumber      int64   `json:"AccountNumber"`
	DeviceName         string  `json:"DeviceName"`
	DevicePrice        float64 `json:"DevicePrice"`
	DeviceMonthlyPrice float64 `json:"DeviceMonthlyPrice"`
	MSISDN             string  `json:"MSISDN"`
	UpfrontPayment     float64 `json:"UpfrontPayment"`
	ContractDuration   int     `json:"ContractDuration"`
}

func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var req CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PackageID == 0 || req.ContractDuration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PackageID and a positive ContractDuration are required"})
	}

	employeeCode := middleware.EmployeeCode(c)
	staff, err := h.staff.FindByCode(employeeCode)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	pkg, err := h.packages.FindByID(req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
		}
		return internalError(c, err, "Failed to load package")
	}

	monthlyPayment := pkg.MonthlyPrice + req.DeviceMonthlyPrice
	limitCheck := model.LimitWithin
	if monthlyPayment > staff.Allocation.AirtimeAllocation {
		limitCheck = model.LimitExceeding
	}

	contract := model.Contract{
		AccountNumber:      req.AccountNumber,
		EmployeeCode:       employeeCode,
		PackageID:          pkg.PackageID,
		DeviceName:         req.DeviceName,
		DevicePrice:        req.DevicePrice,
		DeviceMonthlyPrice: req.DeviceMonthlyPrice,
		MSISDN:             req.MSISDN,
		MonthlyPayment:     monthlyPayment,
		UpfrontPayment:     req.UpfrontPayment,
		LimitCheck:         limitCheck,
		ApprovalStatus:     model.ApprovalPending,
		ContractDuration:   req.ContractDuration,
	}
	err = h.notifier.InTx(func(tx *gorm.DB, notifier *service.Notifier) error {
		if err := repository.NewContractRepository(tx).Create(&contract); err != nil {
			return err
		}
		notifier.NotifyRoles(employeeCode, "Contract Request",
			fmt.Sprintf("%s submitted a new airtime contract request (N$%.2f per month, %s).",
				staff.FullName, monthlyPayment, limitCheck),
			model.RoleHR)
		return nil
	})
	if err != nil {
		return internalError(c, err, "Failed to create contract")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Contract submitted for approval",
		"data":    contract,
	})
}

func (h *ContractHandler) GetAll(c *fiber.Ctx) error {
	status := c.Query("status")
	var (
		contracts []model.Contract
		err       error
	)
	if status != "" {
		contracts, err = h.contracts.GetByApprovalStatus(status)
	} else {
		contracts, err = h.contracts.GetAll()
	}
	if err != nil {
		return internalError(c, err, "Failed to fetch contracts")
	}

	return c.JSON(fiber.Map{
		"message": "Contracts retrieved",
		"data":    contracts,
	})
}

func (h *ContractHandler) GetMine(c *fiber.Ctx) error {
	contracts, err := h.contracts.GetByEmployee(middleware.EmployeeCode(c))
	if err != nil {
		return internalError(c, err, "Failed to fetch contracts")
	}

	return c.JSON(fiber.Map{
		"message": "Contracts retrieved",
		"data":    contracts,
	})
}

func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract number"})
	}

	contract, err := h.contracts.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}

	return c.JSON(fiber.Map{
		"message": "Contract retrieved",
		"data":    contract,
	})
}

// Approve activates a pending contract. The subscription runs from today for
// the agreed duration.
func (h *ContractHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract number"})
	}

	contract, err := h.contracts.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}
	if contract.ApprovalStatus != model.ApprovalPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Contract has already been processed"})
	}

	now := time.Now()
	end := model.ContractEndFrom(now, contract.ContractDuration)
	contract.ApprovalStatus = model.ApprovalApproved
	contract.SubscriptionStatus = model.SubscriptionOngoing
	contract.ContractStartDate = &now
	contract.ContractEndDate = &end

	err = h.notifier.InTx(func(tx *gorm.DB, notifier *service.Notifier) error {
		if err := repository.NewContractRepository(tx).Update(contract); err != nil {
			return err
		}
		notifier.NotifyEmployee(contract.EmployeeCode, contract.EmployeeCode, "Contract Approved",
			fmt.Sprintf("Your airtime contract #%d has been approved. It runs until %s.",
				contract.ContractNumber, end.Format("02 Jan 2006")))
		return nil
	})
	if err != nil {
		return internalError(c, err, "Failed to approve contract")
	}

	return c.JSON(fiber.Map{
		"message": "Contract approved",
		"data":    contract,
	})
}

type RejectRequest struct {
	Reason string `json:"Reason"`
}

func (h *ContractHandler) Reject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract number"})
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil || req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A rejection reason is required"})
	}

	contract, err := h.contracts.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}
	if contract.ApprovalStatus != model.ApprovalPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Contract has already been processed"})
	}

	contract.ApprovalStatus = model.ApprovalRejected
	contract.RejectionReason = req.Reason

	err = h.notifier.InTx(func(tx *gorm.DB, notifier *service.Notifier) error {
		if err := repository.NewContractRepository(tx).Update(contract); err != nil {
			return err
		}
		notifier.NotifyEmployee(contract.EmployeeCode, contract.EmployeeCode, "Contract Rejected",
			fmt.Sprintf("Your airtime contract #%d was rejected: %s", contract.ContractNumber, req.Reason))
		return nil
	})
	if err != nil {
		return internalError(c, err, "Failed to reject contract")
	}

	return c.JSON(fiber.Map{
		"message": "Contract rejected",
		"data":    contract,
	})
}

func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract number"})
	}

	contract, err := h.contracts.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}
	if contract.ApprovalStatus != model.ApprovalPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Only pending contracts can be deleted"})
	}
	if contract.EmployeeCode != middleware.EmployeeCode(c) && middleware.RoleID(c) != model.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Contract belongs to another employee"})
	}

	if err := h.contracts.Delete(uint(id)); err != nil {
		return internalError(c, err, "Failed to delete contract")
	}

	return c.JSON(fiber.Map{"message": "Contract deleted"})
}
