package handler

import (
	"time"

	"ambasphere-backend/config"
	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	repo repository.StaffRepository
}

func NewAuthHandler(repo repository.StaffRepository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type LoginRequest struct {
	Email        string `json:"Email"`
	EmployeeCode string `json:"EmployeeCode"`
	Password     string `json:"Password"`
}

// Login accepts either the email address or the employee code as identifier.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var (
		staff *model.Staff
		err   error
	)
	if req.Email != "" {
		staff, err = h.repo.FindByEmail(req.Email)
	} else {
		staff, err = h.repo.FindByCode(req.EmployeeCode)
	}
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if staff.EmploymentStatus != model.EmploymentActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is inactive. Contact HR."})
	}

	token, err := generateToken(staff, config.TokenKey(), 24*time.Hour)
	if err != nil {
		return internalError(c, err, "Failed to create token")
	}
	refreshToken, err := generateToken(staff, config.RefreshKey(), 7*24*time.Hour)
	if err != nil {
		return internalError(c, err, "Failed to create refresh token")
	}

	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"token":        token,
		"refreshToken": refreshToken,
		"data": fiber.Map{
			"EmployeeCode": staff.EmployeeCode,
			"FullName":     staff.FullName,
			"Email":        staff.Email,
			"RoleID":       staff.RoleID,
			"RoleName":     staff.Role.RoleName,
			"Department":   staff.Department,
		},
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"RefreshToken"`
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return config.RefreshKey(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}

	claims := token.Claims.(jwt.MapClaims)
	code, _ := claims["employee_code"].(string)
	staff, err := h.repo.FindByCode(code)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Account no longer exists"})
	}

	newToken, err := generateToken(staff, config.TokenKey(), 24*time.Hour)
	if err != nil {
		return internalError(c, err, "Failed to create token")
	}

	return c.JSON(fiber.Map{"token": newToken})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	staff, err := h.repo.FindByCode(middleware.EmployeeCode(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	return c.JSON(fiber.Map{
		"message": "Profile retrieved",
		"data":    staff,
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"CurrentPassword"`
	NewPassword     string `json:"NewPassword"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password must be at least 8 characters"})
	}

	staff, err := h.repo.FindByCode(middleware.EmployeeCode(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.CurrentPassword)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, err, "Failed to hash password")
	}
	staff.Password = string(hashed)

	if err := h.repo.Update(staff); err != nil {
		return internalError(c, err, "Failed to update password")
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

func generateToken(staff *model.Staff, key []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_code": staff.EmployeeCode,
		"full_name":     staff.FullName,
		"role_id":       staff.RoleID,
		"jti":           uuid.NewString(),
		"exp":           time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}
