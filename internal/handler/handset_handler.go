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

const systemActor = "Ambasphere System"

type HandsetHandler struct {
	handsets repository.HandsetRepository
	staff    repository.StaffRepository
	notifier *service.Notifier
}

func NewHandsetHandler(
	handsets repository.HandsetRepository,
	staff repository.StaffRepository,
	notifier *service.Notifier,
) *HandsetHandler {
	return &HandsetHandler{handsets: handsets, staff: staff, notifier: notifier}
}

// requestNumber is the human-facing reference printed on notifications and
// the control card.
func requestNumber(id uint) string {
	return fmt.Sprintf("HR-%04d", id)
}

type CreateHandsetRequest struct {
	HandsetName    string  `json:"HandsetName"`
	HandsetPrice   float64 `json:"HandsetPrice"`
	AccessFeePaid  float64 `json:"AccessFeePaid"`
	ExcessAmount   float64 `json:"ExcessAmount"`
	CollectionDate string  `json:"CollectionDate"`
	IMEINumber     string  `json:"IMEINumber"`
	DeviceLocation string  `json:"DeviceLocation"`
	StoreName      string  `json:"StoreName"`
	Notes          string  `json:"Notes"`
}

// Create files a handset request for the authenticated employee. The first
// request an employee ever makes is a new issue; every later one is a renewal
// and is only accepted once the previous device's renewal date has passed.
// Renewals have their probation step verified at intake and go straight to
// finance; a collection date on the request records an already-collected
// device.
func (h *HandsetHandler) Create(c *fiber.Ctx) error {
	var req CreateHandsetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.HandsetName == "" || req.HandsetPrice <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "HandsetName and a positive HandsetPrice are required"})
	}

	employeeCode := middleware.EmployeeCode(c)
	staff, err := h.staff.FindByCode(employeeCode)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	if staff.AllocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No handset allocation is configured for your staff category"})
	}

	existing, err := h.handsets.GetByEmployee(employeeCode)
	if err != nil {
		return internalError(c, err, "Failed to check existing requests")
	}
	for _, item := range existing {
		if item.Status != model.StatusRejected && !item.Status.Terminal() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Request %s is still in progress", requestNumber(item.ID)),
			})
		}
	}

	requestType := model.RequestTypeNew
	if len(existing) > 0 {
		requestType = model.RequestTypeRenewal
	}

	var collectionDate *time.Time
	if req.CollectionDate != "" {
		collected, err := parseDate(req.CollectionDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid CollectionDate"})
		}
		collectionDate = &collected
	}

	now := time.Now()
	handset := model.Handset{
		EmployeeCode:   employeeCode,
		AllocationID:   staff.AllocationID,
		HandsetName:    req.HandsetName,
		HandsetPrice:   req.HandsetPrice,
		AccessFeePaid:  req.AccessFeePaid,
		ExcessAmount:   req.ExcessAmount,
		WithinLimit:    req.ExcessAmount <= 0,
		IMEINumber:     req.IMEINumber,
		DeviceLocation: req.DeviceLocation,
		StoreName:      req.StoreName,
		RequestDate:    now,
		RequestType:    requestType,
		RequestMethod:  systemActor,
		Status:         model.StatusSubmitted,
		Notes:          req.Notes,
	}

	if requestType == model.RequestTypeRenewal {
		latest, err := h.handsets.LatestCollectedByEmployee(employeeCode)
		if err == nil && latest.RenewalDate != nil {
			if latest.RenewalDate.After(now) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("Your current handset is only renewable from %s",
						latest.RenewalDate.Format("02 Jan 2006")),
				})
			}
			// Carried over until a new collection sets a fresh one.
			renewal := *latest.RenewalDate
			handset.RenewalDate = &renewal
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return internalError(c, err, "Failed to check renewal eligibility")
		}

		// Probation only applies to first-time requests; a renewal enters
		// the pipeline with that step already verified.
		handset.Status = model.StatusProbationVerified
		handset.ProbationVerified = true
		handset.ProbationVerifiedBy = systemActor
		handset.ProbationVerifiedDate = &now
	}

	if collectionDate != nil {
		renewal := model.RenewalDateFrom(*collectionDate)
		handset.Status = model.StatusCollected
		handset.CollectionDate = collectionDate
		handset.CollectedBy = staff.FullName
		handset.RenewalDate = &renewal
	}

	err = h.notifier.InTx(func(tx *gorm.DB, notifier *service.Notifier) error {
		if err := repository.NewHandsetRepository(tx).Create(&handset); err != nil {
			return err
		}

		number := requestNumber(handset.ID)
		notifier.NotifyEmployee(employeeCode, employeeCode, "Handset Request",
			fmt.Sprintf("Your handset request %s for %s (N$%.2f) has been submitted.",
				number, handset.HandsetName, handset.HandsetPrice))

		if requestType == model.RequestTypeRenewal {
			notifier.NotifyRoles(employeeCode, "Handset Renewal Request",
				fmt.Sprintf("%s submitted handset renewal request %s for %s. Please verify the renewal.",
					staff.FullName, number, handset.HandsetName),
				model.RoleFinance)
		}
		return nil
	})
	if err != nil {
		return internalError(c, err, "Failed to create handset request")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Handset request %s submitted", requestNumber(handset.ID)),
		"data":    handset,
	})
}

func (h *HandsetHandler) GetAll(c *fiber.Ctx) error {
	status := c.Query("status")
	var (
		handsets []model.Handset
		err      error
	)
	if status != "" {
		if !model.Status(status).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown status: " + status})
		}
		handsets, err = h.handsets.GetByStatus(model.Status(status))
	} else {
		handsets, err = h.handsets.GetAll()
	}
	if err != nil {
		return internalError(c, err, "Failed to fetch handset requests")
	}

	return c.JSON(fiber.Map{
		"message": "Handset requests retrieved",
		"data":    handsets,
	})
}

func (h *HandsetHandler) GetMine(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetByEmployee(middleware.EmployeeCode(c))
	if err != nil {
		return internalError(c, err, "Failed to fetch handset requests")
	}

	return c.JSON(fiber.Map{
		"message": "Handset requests retrieved",
		"data":    handsets,
	})
}

func (h *HandsetHandler) GetByEmployee(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetByEmployee(c.Params("code"))
	if err != nil {
		return internalError(c, err, "Failed to fetch handset requests")
	}

	return c.JSON(fiber.Map{
		"message": "Handset requests retrieved",
		"data":    handsets,
	})
}

func (h *HandsetHandler) GetByID(c *fiber.Ctx) error {
	handset, ok := h.findByParam(c)
	if !ok {
		return nil
	}

	return c.JSON(fiber.Map{
		"message": "Handset request retrieved",
		"data":    handset,
	})
}

type UpdateHandsetRequest struct {
	HandsetName    string  `json:"HandsetName"`
	HandsetPrice   float64 `json:"HandsetPrice"`
	Notes          string  `json:"Notes"`
	CollectionDate string  `json:"CollectionDate"`
}

// Update lets the requester amend device details while the request has not
// entered the approval pipeline. Admins may additionally correct the
// collection date, which recomputes the renewal date.
func (h *HandsetHandler) Update(c *fiber.Ctx) error {
	handset, ok := h.findByParam(c)
	if !ok {
		return nil
	}
	isAdmin := middleware.RoleID(c) == model.RoleAdmin
	if handset.EmployeeCode != middleware.EmployeeCode(c) && !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Request belongs to another employee"})
	}
	if handset.Status != model.StatusSubmitted && !isAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only submitted requests can be edited"})
	}

	var req UpdateHandsetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.HandsetName != "" {
		handset.HandsetName = req.HandsetName
	}
	if req.HandsetPrice > 0 {
		handset.HandsetPrice = req.HandsetPrice
	}
	if req.Notes != "" {
		handset.Notes = req.Notes
	}
	if req.CollectionDate != "" {
		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only admins can amend the collection date"})
		}
		collected, err := parseDate(req.CollectionDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid CollectionDate"})
		}
		renewal := model.RenewalDateFrom(collected)
		handset.CollectionDate = &collected
		handset.RenewalDate = &renewal
	}

	if err := h.handsets.Update(handset); err != nil {
		return internalError(c, err, "Failed to update handset request")
	}

	return c.JSON(fiber.Map{
		"message": "Handset request updated",
		"data":    handset,
	})
}

type UpdateStatusRequest struct {
	Status model.Status `json:"Status"`
	Reason string       `json:"Reason"`
}

// UpdateStatus moves a request along the workflow. Only transitions allowed
// by the workflow table are accepted.
func (h *HandsetHandler) UpdateStatus(c *fiber.Ctx) error {
	handset, ok := h.findByParam(c)
	if !ok {
		return nil
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !req.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown status: " + string(req.Status)})
	}
	if !handset.Status.CanTransition(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot move request from %s to %s", handset.Status, req.Status),
		})
	}

	now := time.Now()
	handset.Status = req.Status
	if req.Status == model.StatusRejected {
		handset.RejectionReason = req.Reason
		handset.RejectedBy = middleware.FullName(c)
		handset.RejectedDate = &now
	}

	err := h.notifier.InTx(func(tx *gorm.DB, notifier *service.Notifier) error {
		if err := repository.NewHandsetRepository(tx).Update(handset); err != nil {
			return err
		}
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Handset Request Update",
			fmt.Sprintf("Your handset request %s is now: %s", requestNumber(handset.ID), handset.Status))
		return nil
	})
	if err != nil {
		return internalError(c, err, "Failed to update status")
	}

	return c.JSON(fiber.Map{
		"message": "Status updated",
		"data":    handset,
	})
}

// Delete withdraws a request. Anything past submission is part of the audit
// trail and stays.
func (h *HandsetHandler) Delete(c *fiber.Ctx) error {
	handset, ok := h.findByParam(c)
	if !ok {
		return nil
	}
	if handset.EmployeeCode != middleware.EmployeeCode(c) && middleware.RoleID(c) != model.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Request belongs to another employee"})
	}
	if handset.Status != model.StatusSubmitted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only submitted requests can be withdrawn"})
	}

	if err := h.handsets.Delete(handset.ID); err != nil {
		return internalError(c, err, "Failed to delete handset request")
	}

	return c.JSON(fiber.Map{"message": "Handset request withdrawn"})
}

// AllocationSummary shows the authenticated employee their handset benefit:
// the allocation amount, the current device and when it becomes renewable.
func (h *HandsetHandler) AllocationSummary(c *fiber.Ctx) error {
	staff, err := h.staff.FindByCode(middleware.EmployeeCode(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	summary := fiber.Map{
		"EmployeeCode":      staff.EmployeeCode,
		"StaffCategory":     staff.Allocation.StaffCategory,
		"HandsetAllocation": staff.Allocation.HandsetAllocation,
		"CurrentHandset":    nil,
		"NextRenewalDate":   nil,
		"Eligible":          true,
	}
	latest, err := h.handsets.LatestCollectedByEmployee(staff.EmployeeCode)
	if err == nil {
		summary["CurrentHandset"] = latest.HandsetName
		summary["NextRenewalDate"] = latest.RenewalDate
		if latest.RenewalDate != nil {
			summary["Eligible"] = !latest.RenewalDate.After(time.Now())
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err, "Failed to load handset history")
	}

	return c.JSON(fiber.Map{
		"message": "Allocation summary retrieved",
		"data":    summary,
	})
}

// findByParam loads the request named by the :id route parameter. When it
// returns false the error response has already been written.
func (h *HandsetHandler) findByParam(c *fiber.Ctx) (*model.Handset, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid handset request ID"})
		return nil, false
	}

	handset, err := h.handsets.FindByID(uint(id))
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Handset request not found"})
		return nil, false
	}
	return handset, true
}
