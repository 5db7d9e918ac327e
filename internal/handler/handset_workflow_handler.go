package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"
	"ambasphere-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var imeiPattern = regexp.MustCompile(`^\d{15}$`)

// HandsetWorkflowHandler owns the approval pipeline: HR verifies probation,
// finance verifies renewals and confirms excess payments, retail reserves the
// device, warehouse issues the IMEI and the fixed asset code, and retail hands
// the device over.
type HandsetWorkflowHandler struct {
	handsets repository.HandsetRepository
	staff    repository.StaffRepository
	notifier *service.Notifier
}

func NewHandsetWorkflowHandler(
	handsets repository.HandsetRepository,
	staff repository.StaffRepository,
	notifier *service.Notifier,
) *HandsetWorkflowHandler {
	return &HandsetWorkflowHandler{handsets: handsets, staff: staff, notifier: notifier}
}

func (h *HandsetWorkflowHandler) load(c *fiber.Ctx) (*model.Handset, bool) {
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

func (h *HandsetWorkflowHandler) save(handset *model.Handset, notify func(*service.Notifier)) error {
	return h.notifier.InTx(func(tx *gorm.DB, notifier *service.Notifier) error {
		if err := repository.NewHandsetRepository(tx).Update(handset); err != nil {
			return err
		}
		notify(notifier)
		return nil
	})
}

// VerificationRequest carries an approve or reject decision. An empty body
// approves; a rejection may supply a reason and, for renewals, the next date
// the employee becomes eligible.
type VerificationRequest struct {
	Approved    *bool  `json:"Approved"`
	Reason      string `json:"Reason"`
	RenewalDate string `json:"RenewalDate"`
}

func parseVerification(c *fiber.Ctx) (VerificationRequest, bool) {
	var req VerificationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
			return req, false
		}
	}
	return req, true
}

func (r VerificationRequest) approved() bool {
	return r.Approved == nil || *r.Approved
}

// VerifyProbation confirms the employee has served the 12 month probation
// period before a first handset is issued, or rejects the request.
func (h *HandsetWorkflowHandler) VerifyProbation(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.RequestType == model.RequestTypeRenewal {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Renewal requests do not go through probation verification",
		})
	}
	if handset.Status != model.StatusSubmitted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Request is %s, probation verification only applies to submitted requests", handset.Status),
		})
	}

	req, ok := parseVerification(c)
	if !ok {
		return nil
	}

	staff, err := h.staff.FindByCode(handset.EmployeeCode)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	now := time.Now()
	if !req.approved() {
		reason := req.Reason
		if reason == "" {
			reason = "Probation Not Completed"
		}
		handset.ProbationVerified = false
		handset.ProbationVerifiedBy = middleware.FullName(c)
		handset.ProbationVerifiedDate = &now
		handset.Status = model.StatusRejected
		handset.RejectionReason = reason
		handset.RejectedBy = middleware.FullName(c)
		handset.RejectedDate = &now

		err = h.save(handset, func(notifier *service.Notifier) {
			notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Handset Request Rejected",
				fmt.Sprintf("Your handset request %s was rejected: %s", requestNumber(handset.ID), reason))
		})
		if err != nil {
			return internalError(c, err, "Failed to record probation decision")
		}
		return c.JSON(fiber.Map{
			"message": "Probation verification rejected",
			"data":    handset,
		})
	}

	if staff.EmploymentStartDate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Employee has no employment start date on record"})
	}
	if staff.EmploymentStartDate.AddDate(1, 0, 0).After(now) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("%s has not completed the 12 month probation period", staff.FullName),
		})
	}

	handset.ProbationVerified = true
	handset.ProbationVerifiedBy = middleware.FullName(c)
	handset.ProbationVerifiedDate = &now
	handset.Status = model.StatusProbationVerified

	err = h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Probation Verified",
			fmt.Sprintf("Your handset request %s passed probation verification.", requestNumber(handset.ID)))
		notifier.NotifyRoles(handset.EmployeeCode, "Handset Request - Finance Review",
			fmt.Sprintf("Request %s (%s) passed probation verification. Please review and process.",
				requestNumber(handset.ID), staff.FullName),
			model.RoleFinance)
	})
	if err != nil {
		return internalError(c, err, "Failed to verify probation")
	}

	return c.JSON(fiber.Map{
		"message": "Probation verified",
		"data":    handset,
	})
}

// VerifyRenewal is finance's decision on a renewal request. Approval sends
// the employee off to locate a device; rejection records the reason and may
// set the next date the employee becomes eligible.
func (h *HandsetWorkflowHandler) VerifyRenewal(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.RequestType != model.RequestTypeRenewal {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request is not a renewal"})
	}
	if handset.RenewalVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Renewal has already been verified"})
	}
	if handset.Status != model.StatusSubmitted && handset.Status != model.StatusProbationVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Request is %s, renewal verification no longer applies", handset.Status),
		})
	}

	req, ok := parseVerification(c)
	if !ok {
		return nil
	}

	now := time.Now()
	if !req.approved() {
		reason := req.Reason
		if reason == "" {
			reason = "Renewal request rejected by finance team"
		}
		handset.RenewalVerified = false
		handset.RenewalVerifiedBy = middleware.FullName(c)
		handset.RenewalVerifiedDate = &now
		handset.Status = model.StatusRejected
		handset.RejectionReason = reason
		handset.RejectedBy = middleware.FullName(c)
		handset.RejectedDate = &now
		if req.RenewalDate != "" {
			nextEligible, err := parseDate(req.RenewalDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid RenewalDate"})
			}
			handset.RenewalDate = &nextEligible
		}

		err := h.save(handset, func(notifier *service.Notifier) {
			message := fmt.Sprintf("Your handset renewal request %s was rejected: %s", requestNumber(handset.ID), reason)
			if handset.RenewalDate != nil {
				message += fmt.Sprintf(" You become eligible again on %s.", handset.RenewalDate.Format("02 Jan 2006"))
			}
			notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Handset Renewal Rejected", message)
		})
		if err != nil {
			return internalError(c, err, "Failed to record renewal decision")
		}
		return c.JSON(fiber.Map{
			"message": "Renewal verification rejected",
			"data":    handset,
		})
	}

	handset.RenewalVerified = true
	handset.RenewalVerifiedBy = middleware.FullName(c)
	handset.RenewalVerifiedDate = &now
	handset.Status = model.StatusRenewalVerified

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Renewal Verified",
			fmt.Sprintf("Your handset renewal request %s has been verified. Please locate your device of choice at the warehouse or a retail store.",
				requestNumber(handset.ID)))
	})
	if err != nil {
		return internalError(c, err, "Failed to verify renewal")
	}

	return c.JSON(fiber.Map{
		"message": "Renewal verified",
		"data":    handset,
	})
}

type ReserveRequest struct {
	StoreName      string `json:"StoreName"`
	IMEINumber     string `json:"IMEINumber"`
	DeviceLocation string `json:"DeviceLocation"`
}

// Reserve records the specific unit a store is holding for a verified
// renewal: the store, the device location and the IMEI, which also marks the
// device as located.
func (h *HandsetWorkflowHandler) Reserve(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.Reserved {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Handset has already been reserved"})
	}
	if handset.Status != model.StatusRenewalVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only renewal verified requests can be reserved at a store",
		})
	}

	var req ReserveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.StoreName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "StoreName is required"})
	}
	if !imeiPattern.MatchString(req.IMEINumber) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "IMEI number must be exactly 15 digits"})
	}
	if strings.TrimSpace(req.DeviceLocation) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "DeviceLocation is required"})
	}

	if existing, err := h.handsets.FindByIMEI(req.IMEINumber); err == nil && existing.ID != handset.ID {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("IMEI %s is already assigned to request %s", req.IMEINumber, requestNumber(existing.ID)),
		})
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err, "Failed to check IMEI")
	}

	now := time.Now()
	handset.Reserved = true
	handset.ReservedBy = middleware.FullName(c)
	handset.ReservedDate = &now
	handset.StoreName = strings.TrimSpace(req.StoreName)
	handset.IMEINumber = req.IMEINumber
	handset.DeviceLocation = strings.TrimSpace(req.DeviceLocation)
	handset.DeviceLocated = true
	handset.DeviceLocatedBy = middleware.FullName(c)
	handset.DeviceLocatedDate = &now
	handset.Status = model.StatusDeviceLocated

	err := h.save(handset, func(notifier *service.Notifier) {
		if handset.OutstandingExcess() {
			notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Handset Reserved - Payment Required",
				fmt.Sprintf("A %s has been reserved for you at %s. Please settle the excess of N$%.2f before collection.",
					handset.HandsetName, handset.StoreName, handset.ExcessAmount))
			return
		}
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Handset Reserved",
			fmt.Sprintf("A %s has been reserved for you at %s.", handset.HandsetName, handset.StoreName))
	})
	if err != nil {
		return internalError(c, err, "Failed to reserve handset")
	}

	return c.JSON(fiber.Map{
		"message": "Handset reserved",
		"data":    handset,
	})
}

type IssueIMEIRequest struct {
	IMEINumber     string `json:"IMEINumber"`
	DeviceLocation string `json:"DeviceLocation"`
}

// IssueIMEI captures the physical device identity once a unit is found.
func (h *HandsetWorkflowHandler) IssueIMEI(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}

	var req IssueIMEIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !imeiPattern.MatchString(req.IMEINumber) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "IMEI number must be exactly 15 digits"})
	}
	if !handset.Status.CanTransition(model.StatusDeviceLocated) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot locate a device for a request that is %s", handset.Status),
		})
	}

	if existing, err := h.handsets.FindByIMEI(req.IMEINumber); err == nil && existing.ID != handset.ID {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("IMEI %s is already assigned to request %s", req.IMEINumber, requestNumber(existing.ID)),
		})
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err, "Failed to check IMEI")
	}

	now := time.Now()
	handset.IMEINumber = req.IMEINumber
	handset.DeviceLocation = req.DeviceLocation
	handset.DeviceLocated = true
	handset.DeviceLocatedBy = middleware.FullName(c)
	handset.DeviceLocatedDate = &now
	handset.Status = model.StatusDeviceLocated

	if err := h.handsets.Update(handset); err != nil {
		return internalError(c, err, "Failed to record IMEI")
	}

	return c.JSON(fiber.Map{
		"message": "Device located and IMEI recorded",
		"data":    handset,
	})
}

// ShareIMEIWithAdmin runs the allocation limit check. An excess amount
// declared at intake stands; otherwise the excess is the price over the
// employee's allocation. When nothing is outstanding, payment confirmation is
// automatic and the request moves straight on to asset code assignment.
func (h *HandsetWorkflowHandler) ShareIMEIWithAdmin(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.Status != model.StatusDeviceLocated || handset.IMEINumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A located device with an IMEI is required before the limit check",
		})
	}

	allocation := handset.Employee.Allocation.HandsetAllocation
	now := time.Now()
	if handset.ExcessAmount <= 0 && handset.HandsetPrice > allocation {
		handset.ExcessAmount = handset.HandsetPrice - allocation
	}
	handset.WithinLimit = handset.ExcessAmount <= 0
	handset.LimitChecked = true
	handset.LimitCheckedBy = middleware.FullName(c)
	handset.LimitCheckedDate = &now
	handset.Status = model.StatusLimitChecked

	if !handset.OutstandingExcess() {
		handset.PaymentConfirmed = true
		handset.PaymentConfirmedBy = systemActor
		handset.PaymentConfirmedDate = &now
		handset.Status = model.StatusPaymentConfirmed
	}

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyRoles(handset.EmployeeCode, "IMEI Shared",
			fmt.Sprintf("IMEI %s for request %s has been shared for the limit check.",
				handset.IMEINumber, requestNumber(handset.ID)),
			model.RoleAdmin)

		if handset.PaymentConfirmed {
			notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Payment Confirmed",
				fmt.Sprintf("Your handset %s is fully covered by your allocation. No payment is due.", handset.HandsetName))
			notifier.NotifyRoles(handset.EmployeeCode, "Asset Code Required",
				fmt.Sprintf("Request %s is paid up. Please assign a fixed asset code.", requestNumber(handset.ID)),
				model.RoleFinance)
			return
		}
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Excess Payment Due",
			fmt.Sprintf("Your handset %s exceeds your allocation by N$%.2f. Please settle the excess before collection.",
				handset.HandsetName, handset.ExcessAmount))
		notifier.NotifyRoles(handset.EmployeeCode, "Excess Payment Pending",
			fmt.Sprintf("Request %s has an excess of N$%.2f awaiting confirmation.",
				requestNumber(handset.ID), handset.ExcessAmount),
			model.RoleFinance)
	})
	if err != nil {
		return internalError(c, err, "Failed to run limit check")
	}

	return c.JSON(fiber.Map{
		"message": "Limit check completed",
		"data":    handset,
	})
}

// ConfirmPayment records that finance received the excess amount; the request
// is back within limit from here on.
func (h *HandsetWorkflowHandler) ConfirmPayment(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.ExcessAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request has no excess amount to confirm"})
	}
	if handset.PaymentConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment has already been confirmed"})
	}
	if !handset.Status.CanTransition(model.StatusPaymentConfirmed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot confirm payment for a request that is %s", handset.Status),
		})
	}

	now := time.Now()
	handset.PaymentConfirmed = true
	handset.PaymentConfirmedBy = middleware.FullName(c)
	handset.PaymentConfirmedDate = &now
	handset.WithinLimit = true
	handset.Status = model.StatusPaymentConfirmed

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Payment Confirmed",
			fmt.Sprintf("Your excess payment of N$%.2f for request %s has been confirmed.",
				handset.ExcessAmount, requestNumber(handset.ID)))
		notifier.NotifyRoles(handset.EmployeeCode, "Asset Code Required",
			fmt.Sprintf("Request %s is paid up. Please assign a fixed asset code.", requestNumber(handset.ID)),
			model.RoleAdmin, model.RoleFinance)
	})
	if err != nil {
		return internalError(c, err, "Failed to confirm payment")
	}

	return c.JSON(fiber.Map{
		"message": "Payment confirmed",
		"data":    handset,
	})
}

type AssetCodeRequest struct {
	FixedAssetCode string `json:"FixedAssetCode"`
}

func (h *HandsetWorkflowHandler) IssueFixedAssetCode(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if !handset.PaymentConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment must be confirmed before an asset code is assigned"})
	}
	if handset.FixedAssetCode != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A fixed asset code has already been assigned"})
	}

	var req AssetCodeRequest
	if err := c.BodyParser(&req); err != nil || req.FixedAssetCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "FixedAssetCode is required"})
	}

	now := time.Now()
	handset.FixedAssetCode = req.FixedAssetCode
	handset.FixedAssetCodeAssignedBy = middleware.FullName(c)
	handset.FixedAssetCodeAssignedDate = &now
	handset.Status = model.StatusAssetCodeAssigned

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyRoles(handset.EmployeeCode, "MR Number Required",
			fmt.Sprintf("Request %s has asset code %s. Please create the material request.",
				requestNumber(handset.ID), handset.FixedAssetCode),
			model.RoleWarehouse)
	})
	if err != nil {
		return internalError(c, err, "Failed to assign asset code")
	}

	return c.JSON(fiber.Map{
		"message": "Fixed asset code assigned",
		"data":    handset,
	})
}

type MRNumberRequest struct {
	MRNumber string `json:"MRNumber"`
}

func (h *HandsetWorkflowHandler) AssignMRNumber(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.FixedAssetCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A fixed asset code is required before an MR number"})
	}
	if handset.MRNumber != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An MR number has already been assigned"})
	}

	var req MRNumberRequest
	if err := c.BodyParser(&req); err != nil || req.MRNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "MRNumber is required"})
	}

	now := time.Now()
	handset.MRNumber = req.MRNumber
	handset.MRAssignedBy = middleware.FullName(c)
	handset.MRAssignedDate = &now
	handset.Status = model.StatusMRCreated

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyRoles(handset.EmployeeCode, "Control Card Required",
			fmt.Sprintf("Request %s has MR number %s. Please print the control card.",
				requestNumber(handset.ID), handset.MRNumber),
			model.RoleRetail)
	})
	if err != nil {
		return internalError(c, err, "Failed to assign MR number")
	}

	return c.JSON(fiber.Map{
		"message": "MR number assigned",
		"data":    handset,
	})
}

// GetControlCardData returns everything printed on the collection control
// card. Completed requests no longer have a card.
func (h *HandsetWorkflowHandler) GetControlCardData(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.Status.Terminal() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request is already closed; no control card is available"})
	}

	return c.JSON(fiber.Map{
		"message": "Control card data retrieved",
		"data": fiber.Map{
			"RequestNumber":  requestNumber(handset.ID),
			"EmployeeCode":   handset.EmployeeCode,
			"EmployeeName":   handset.Employee.FullName,
			"Department":     handset.Employee.Department,
			"HandsetName":    handset.HandsetName,
			"HandsetPrice":   handset.HandsetPrice,
			"IMEINumber":     handset.IMEINumber,
			"FixedAssetCode": handset.FixedAssetCode,
			"MRNumber":       handset.MRNumber,
			"StoreName":      handset.StoreName,
			"Status":         handset.Status,
		},
	})
}

// PrintControlCard generates the collection voucher and marks the device
// ready for handover.
func (h *HandsetWorkflowHandler) PrintControlCard(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.Status.Terminal() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request is already closed; no control card can be printed"})
	}
	if handset.MRNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An MR number is required before the control card"})
	}
	if !handset.Status.CanTransition(model.StatusReadyForCollection) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot print a control card for a request that is %s", handset.Status),
		})
	}

	now := time.Now()
	handset.ControlCardNumber = fmt.Sprintf("CC-%04d", handset.ID)
	handset.ControlCardUrl = fmt.Sprintf("/control-cards/staff-handset-form-%04d-%s.pdf", handset.ID, uuid.NewString())
	handset.ControlCardPrintedBy = middleware.FullName(c)
	handset.ControlCardPrintedDate = &now
	handset.Status = model.StatusReadyForCollection

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Ready for Collection",
			fmt.Sprintf("Your %s is ready for collection at %s. Bring your control card %s.",
				handset.HandsetName, handset.StoreName, handset.ControlCardNumber))
	})
	if err != nil {
		return internalError(c, err, "Failed to record control card")
	}

	return c.JSON(fiber.Map{
		"message": "Control card printed",
		"data":    handset,
	})
}

type CollectionProofRequest struct {
	CollectionProofUrl string `json:"CollectionProofUrl"`
	SignatureCaptured  bool   `json:"SignatureCaptured"`
}

// UploadCollectionProof closes the loop: the signed control card is stored,
// the device is marked collected and its two year renewal clock starts.
func (h *HandsetWorkflowHandler) UploadCollectionProof(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if handset.ControlCardUrl == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A control card must be printed before collection proof is uploaded"})
	}
	if !handset.Status.CanTransition(model.StatusCollected) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot collect a request that is %s", handset.Status),
		})
	}

	var req CollectionProofRequest
	if err := c.BodyParser(&req); err != nil || req.CollectionProofUrl == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CollectionProofUrl is required"})
	}

	now := time.Now()
	renewal := model.RenewalDateFrom(now)
	handset.CollectionDate = &now
	handset.CollectedBy = middleware.FullName(c)
	handset.CollectionProofUrl = req.CollectionProofUrl
	handset.CollectionProofUploadedBy = middleware.FullName(c)
	handset.SignatureCaptured = req.SignatureCaptured
	handset.RenewalDate = &renewal
	handset.Status = model.StatusCollected

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Handset Collected",
			fmt.Sprintf("Your %s has been collected. It becomes renewable on %s.",
				handset.HandsetName, renewal.Format("02 Jan 2006")))
	})
	if err != nil {
		return internalError(c, err, "Failed to record collection")
	}

	return c.JSON(fiber.Map{
		"message": "Collection recorded",
		"data":    handset,
	})
}

// Reject ends a request at any point before collection.
func (h *HandsetWorkflowHandler) Reject(c *fiber.Ctx) error {
	handset, ok := h.load(c)
	if !ok {
		return nil
	}
	if !handset.Status.CanTransition(model.StatusRejected) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot reject a request that is %s", handset.Status),
		})
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil || req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A rejection reason is required"})
	}

	now := time.Now()
	handset.Status = model.StatusRejected
	handset.RejectionReason = req.Reason
	handset.RejectedBy = middleware.FullName(c)
	handset.RejectedDate = &now

	err := h.save(handset, func(notifier *service.Notifier) {
		notifier.NotifyEmployee(handset.EmployeeCode, handset.EmployeeCode, "Handset Request Rejected",
			fmt.Sprintf("Your handset request %s was rejected: %s", requestNumber(handset.ID), req.Reason))
	})
	if err != nil {
		return internalError(c, err, "Failed to reject request")
	}

	return c.JSON(fiber.Map{
		"message": "Request rejected",
		"data":    handset,
	})
}
