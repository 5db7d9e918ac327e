package handler

import (
	"errors"
	"fmt"
	"strings"

	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"
	"ambasphere-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffHandler struct {
	repo     repository.StaffRepository
	notifier *service.Notifier
}

func NewStaffHandler(repo repository.StaffRepository, notifier *service.Notifier) *StaffHandler {
	return &StaffHandler{repo: repo, notifier: notifier}
}

func (h *StaffHandler) GetAll(c *fiber.Ctx) error {
	staff, err := h.repo.GetAll(c.Query("search"))
	if err != nil {
		return internalError(c, err, "Failed to fetch staff")
	}

	return c.JSON(fiber.Map{
		"message": "Staff retrieved",
		"data":    staff,
	})
}

func (h *StaffHandler) GetByCode(c *fiber.Ctx) error {
	staff, err := h.repo.FindByCode(c.Params("code"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	return c.JSON(fiber.Map{
		"message": "Employee retrieved",
		"data":    staff,
	})
}

type CreateStaffRequest struct {
	EmployeeCode        string `json:"EmployeeCode"`
	RoleID              uint   `json:"RoleID"`
	AllocationID        string `json:"AllocationID"`
	FirstName           string `json:"FirstName"`
	LastName            string `json:"LastName"`
	UserName            string `json:"UserName"`
	Email               string `json:"Email"`
	Password            string `json:"Password"`
	PhoneNumber         string `json:"PhoneNumber"`
	Gender              string `json:"Gender"`
	ServicePlan         string `json:"ServicePlan"`
	Position            string `json:"Position"`
	Department          string `json:"Department"`
	Division            string `json:"Division"`
	EmploymentCategory  string `json:"EmploymentCategory"`
	EmploymentStartDate string `json:"EmploymentStartDate"`
}

func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.EmployeeCode == "" || req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "EmployeeCode, FirstName, LastName and Email are required",
		})
	}
	if req.RoleID == 0 {
		req.RoleID = model.RoleEmployee
	}

	if _, err := h.repo.FindByCode(req.EmployeeCode); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An employee with this code already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err, "Failed to check employee code")
	}
	if _, err := h.repo.FindByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An employee with this email already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err, "Failed to check email")
	}

	// New accounts start with the employee code as password; ChangePassword
	// replaces it on first login.
	password := req.Password
	if password == "" {
		password = req.EmployeeCode
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, err, "Failed to hash password")
	}

	userName := req.UserName
	if userName == "" {
		userName = strings.ToLower(req.FirstName + "." + req.LastName)
	}

	staff := model.Staff{
		EmployeeCode:       req.EmployeeCode,
		RoleID:             req.RoleID,
		AllocationID:       req.AllocationID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		FullName:           req.FirstName + " " + req.LastName,
		UserName:           userName,
		Password:           string(hashed),
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		Gender:             req.Gender,
		ServicePlan:        req.ServicePlan,
		Position:           req.Position,
		Department:         req.Department,
		Division:           req.Division,
		EmploymentCategory: req.EmploymentCategory,
		EmploymentStatus:   model.EmploymentActive,
	}
	if start, err := parseDate(req.EmploymentStartDate); err == nil {
		staff.EmploymentStartDate = &start
	}

	err = h.notifier.InTx(func(tx *gorm.DB, notifier *service.Notifier) error {
		if err := repository.NewStaffRepository(tx).Create(&staff); err != nil {
			return err
		}
		notifier.NotifyEmployee(staff.EmployeeCode, staff.EmployeeCode, "Welcome",
			fmt.Sprintf("Welcome to Ambasphere, %s. Your account is ready.", staff.FullName))
		return nil
	})
	if err != nil {
		return internalError(c, err, "Failed to create employee")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Employee created",
		"data":    staff,
	})
}

func (h *StaffHandler) Update(c *fiber.Ctx) error {
	staff, err := h.repo.FindByCode(c.Params("code"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.FirstName != "" {
		staff.FirstName = req.FirstName
	}
	if req.LastName != "" {
		staff.LastName = req.LastName
	}
	if req.FirstName != "" || req.LastName != "" {
		staff.FullName = staff.FirstName + " " + staff.LastName
	}
	if req.Email != "" {
		staff.Email = req.Email
	}
	if req.PhoneNumber != "" {
		staff.PhoneNumber = req.PhoneNumber
	}
	if req.RoleID != 0 {
		staff.RoleID = req.RoleID
	}
	if req.AllocationID != "" {
		staff.AllocationID = req.AllocationID
	}
	if req.ServicePlan != "" {
		staff.ServicePlan = req.ServicePlan
	}
	if req.Position != "" {
		staff.Position = req.Position
	}
	if req.Department != "" {
		staff.Department = req.Department
	}
	if req.Division != "" {
		staff.Division = req.Division
	}
	if req.EmploymentCategory != "" {
		staff.EmploymentCategory = req.EmploymentCategory
	}
	if start, err := parseDate(req.EmploymentStartDate); err == nil {
		staff.EmploymentStartDate = &start
	}

	if err := h.repo.Update(staff); err != nil {
		return internalError(c, err, "Failed to update employee")
	}

	return c.JSON(fiber.Map{
		"message": "Employee updated",
		"data":    staff,
	})
}

// Deactivate marks an employee inactive instead of deleting the row, so
// handset and contract history stays intact.
func (h *StaffHandler) Deactivate(c *fiber.Ctx) error {
	staff, err := h.repo.FindByCode(c.Params("code"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	staff.EmploymentStatus = model.EmploymentInactive
	if err := h.repo.Update(staff); err != nil {
		return internalError(c, err, "Failed to deactivate employee")
	}

	return c.JSON(fiber.Map{"message": "Employee deactivated"})
}
