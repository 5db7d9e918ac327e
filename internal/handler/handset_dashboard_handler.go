package handler

import (
	"sort"
	"strconv"
	"time"

	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// Renewal reminder priorities shown on the finance dashboard.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityNormal = "NORMAL"
)

// HandsetDashboardHandler serves the work queues each department polls:
// pending verifications for HR, payment and asset code queues for finance,
// reservation lists for retail and MR queues for the warehouse.
type HandsetDashboardHandler struct {
	handsets repository.HandsetRepository
}

func NewHandsetDashboardHandler(handsets repository.HandsetRepository) *HandsetDashboardHandler {
	return &HandsetDashboardHandler{handsets: handsets}
}

// approvalEntry is one row on an approver's dashboard: the request plus the
// probation or renewal context that decides how urgently it needs attention.
type approvalEntry struct {
	model.Handset
	RequestNumber    string `json:"RequestNumber"`
	EmployeeName     string `json:"EmployeeName"`
	Department       string `json:"Department"`
	Position         string `json:"Position"`
	Priority         string `json:"Priority"`
	OnProbation      bool   `json:"OnProbation"`
	DaysUntilRenewal *int   `json:"DaysUntilRenewal"`
	RenewalDue       bool   `json:"RenewalDue"`
	RenewalOverdue   bool   `json:"RenewalOverdue"`
}

func buildApprovalEntry(now time.Time, handset model.Handset) approvalEntry {
	entry := approvalEntry{
		Handset:       handset,
		RequestNumber: requestNumber(handset.ID),
		EmployeeName:  handset.Employee.FullName,
		Department:    handset.Employee.Department,
		Position:      handset.Employee.Position,
		Priority:      PriorityNormal,
	}

	if handset.RequestType == model.RequestTypeNew && handset.Employee.EmploymentStartDate != nil {
		entry.OnProbation = handset.Employee.EmploymentStartDate.AddDate(1, 0, 0).After(now)
	}

	if handset.RequestType == model.RequestTypeRenewal && handset.RenewalDate != nil {
		days := daysUntil(now, *handset.RenewalDate)
		entry.DaysUntilRenewal = &days
		entry.RenewalOverdue = days < 0
		entry.RenewalDue = days <= 30
		switch {
		case entry.RenewalOverdue:
			entry.Priority = PriorityHigh
		case entry.RenewalDue:
			entry.Priority = PriorityMedium
		}
	}
	return entry
}

// daysUntil counts whole days from now to when, negative once when has
// passed.
func daysUntil(now, when time.Time) int {
	return int(when.Sub(now).Hours() / 24)
}

func sortApprovalEntries(entries []approvalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := priorityRank(entries[i].Priority), priorityRank(entries[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return entries[i].RequestDate.Before(entries[j].RequestDate)
	})
}

func (h *HandsetDashboardHandler) PendingVerifications(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetByStatus(model.StatusSubmitted)
	if err != nil {
		return internalError(c, err, "Failed to fetch pending verifications")
	}

	now := time.Now()
	entries := make([]approvalEntry, 0, len(handsets))
	for _, handset := range handsets {
		entries = append(entries, buildApprovalEntry(now, handset))
	}
	sortApprovalEntries(entries)

	return c.JSON(fiber.Map{
		"message": "Pending verifications retrieved",
		"data":    entries,
	})
}

// PendingApprovals aggregates every request awaiting a decision. The type
// query narrows to submitted probation (new) or renewal requests.
func (h *HandsetDashboardHandler) PendingApprovals(c *fiber.Ctx) error {
	var requestType model.RequestType
	switch c.Query("type") {
	case "":
	case "probation":
		requestType = model.RequestTypeNew
	case "renewal":
		requestType = model.RequestTypeRenewal
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must be probation or renewal"})
	}

	handsets, err := h.handsets.GetPendingApprovals(requestType)
	if err != nil {
		return internalError(c, err, "Failed to fetch pending approvals")
	}

	now := time.Now()
	entries := make([]approvalEntry, 0, len(handsets))
	summary := fiber.Map{}
	var probation, renewal, high, medium int
	for _, handset := range handsets {
		entry := buildApprovalEntry(now, handset)
		entries = append(entries, entry)
		switch handset.RequestType {
		case model.RequestTypeNew:
			probation++
		case model.RequestTypeRenewal:
			renewal++
		}
		switch entry.Priority {
		case PriorityHigh:
			high++
		case PriorityMedium:
			medium++
		}
	}
	sortApprovalEntries(entries)
	summary["Total"] = len(entries)
	summary["Probation"] = probation
	summary["Renewal"] = renewal
	summary["HighPriority"] = high
	summary["MediumPriority"] = medium

	return c.JSON(fiber.Map{
		"message": "Pending approvals retrieved",
		"data":    entries,
		"summary": summary,
	})
}

type renewalVerificationEntry struct {
	HandsetID        uint       `json:"HandsetID"`
	EmployeeCode     string     `json:"EmployeeCode"`
	EmployeeName     string     `json:"EmployeeName"`
	HandsetName      string     `json:"HandsetName"`
	Status           string     `json:"Status"`
	RenewalDate      *time.Time `json:"RenewalDate"`
	DaysUntilRenewal int        `json:"DaysUntilRenewal"`
	Due              bool       `json:"Due"`
	Overdue          bool       `json:"Overdue"`
}

// RenewalVerifications lists issued renewals by how close their renewal date
// is, so finance can chase the ones that are due or overdue.
func (h *HandsetDashboardHandler) RenewalVerifications(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetRenewalVerifications()
	if err != nil {
		return internalError(c, err, "Failed to fetch renewal verifications")
	}

	now := time.Now()
	entries := make([]renewalVerificationEntry, 0, len(handsets))
	var due, overdue int
	for _, handset := range handsets {
		days := daysUntil(now, *handset.RenewalDate)
		entry := renewalVerificationEntry{
			HandsetID:        handset.ID,
			EmployeeCode:     handset.EmployeeCode,
			EmployeeName:     handset.Employee.FullName,
			HandsetName:      handset.HandsetName,
			Status:           string(handset.Status),
			RenewalDate:      handset.RenewalDate,
			DaysUntilRenewal: days,
			Due:              days <= 30,
			Overdue:          days < 0,
		}
		if entry.Overdue {
			overdue++
		}
		if entry.Due {
			due++
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysUntilRenewal < entries[j].DaysUntilRenewal
	})

	return c.JSON(fiber.Map{
		"message": "Renewal verifications retrieved",
		"data":    entries,
		"summary": fiber.Map{
			"TotalRenewals":   len(entries),
			"DueRenewals":     due,
			"OverdueRenewals": overdue,
		},
	})
}

// ControlCardQueue lists open requests with an MR number that retail still
// has to print a control card for or hand over.
func (h *HandsetDashboardHandler) ControlCardQueue(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetControlCardQueue()
	if err != nil {
		return internalError(c, err, "Failed to fetch control card queue")
	}

	var printed, proofUploaded int
	for _, handset := range handsets {
		if handset.ControlCardUrl != "" {
			printed++
		}
		if handset.CollectionProofUrl != "" {
			proofUploaded++
		}
	}

	return c.JSON(fiber.Map{
		"message": "Control card queue retrieved",
		"data":    handsets,
		"summary": fiber.Map{
			"Total":                   len(handsets),
			"ControlCardPrinted":      printed,
			"CollectionProofUploaded": proofUploaded,
		},
	})
}

type renewalDueEntry struct {
	model.Handset
	Priority string `json:"Priority"`
}

// RenewalDueDates lists devices whose renewal date has arrived or is coming
// up within the daysAhead window (ninety days by default), most urgent first.
func (h *HandsetDashboardHandler) RenewalDueDates(c *fiber.Ctx) error {
	daysAhead := 90
	if value := c.Query("daysAhead"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid daysAhead"})
		}
		daysAhead = parsed
	}

	now := time.Now()
	handsets, err := h.handsets.GetRenewalDue(now.AddDate(0, 0, daysAhead))
	if err != nil {
		return internalError(c, err, "Failed to fetch renewal due dates")
	}

	entries := make([]renewalDueEntry, 0, len(handsets))
	for _, handset := range handsets {
		entries = append(entries, renewalDueEntry{
			Handset:  handset,
			Priority: renewalPriority(now, *handset.RenewalDate),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := priorityRank(entries[i].Priority), priorityRank(entries[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return entries[i].RenewalDate.Before(*entries[j].RenewalDate)
	})

	return c.JSON(fiber.Map{
		"message": "Renewal due dates retrieved",
		"data":    entries,
	})
}

func renewalPriority(now, renewal time.Time) string {
	switch {
	case !renewal.After(now):
		return PriorityHigh
	case !renewal.After(now.AddDate(0, 1, 0)):
		return PriorityMedium
	default:
		return PriorityNormal
	}
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ReservationQueue lists verified renewals still waiting for a store
// reservation.
func (h *HandsetDashboardHandler) ReservationQueue(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetReservationQueue()
	if err != nil {
		return internalError(c, err, "Failed to fetch reservation queue")
	}

	return c.JSON(fiber.Map{
		"message": "Reservation queue retrieved",
		"data":    handsets,
	})
}

// RetailAllocations lists reserved devices, optionally narrowed to one store.
func (h *HandsetDashboardHandler) RetailAllocations(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetReservedByStore(c.Query("store"))
	if err != nil {
		return internalError(c, err, "Failed to fetch reservations")
	}

	return c.JSON(fiber.Map{
		"message": "Reservations retrieved",
		"data":    handsets,
	})
}

// MyReserved returns the authenticated employee's reserved devices.
func (h *HandsetDashboardHandler) MyReserved(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetByEmployee(middleware.EmployeeCode(c))
	if err != nil {
		return internalError(c, err, "Failed to fetch reservations")
	}

	reserved := make([]model.Handset, 0, len(handsets))
	for _, handset := range handsets {
		if handset.Reserved && !handset.Status.Terminal() {
			reserved = append(reserved, handset)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Reservations retrieved",
		"data":    reserved,
	})
}

func (h *HandsetDashboardHandler) PendingPayments(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetPendingPayments()
	if err != nil {
		return internalError(c, err, "Failed to fetch pending payments")
	}

	return c.JSON(fiber.Map{
		"message": "Pending payments retrieved",
		"data":    handsets,
	})
}

func (h *HandsetDashboardHandler) AssetCodeQueue(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetAssetCodeQueue()
	if err != nil {
		return internalError(c, err, "Failed to fetch asset code queue")
	}

	return c.JSON(fiber.Map{
		"message": "Asset code queue retrieved",
		"data":    handsets,
	})
}

func (h *HandsetDashboardHandler) MRQueue(c *fiber.Ctx) error {
	handsets, err := h.handsets.GetMRQueue()
	if err != nil {
		return internalError(c, err, "Failed to fetch MR queue")
	}

	return c.JSON(fiber.Map{
		"message": "MR queue retrieved",
		"data":    handsets,
	})
}
