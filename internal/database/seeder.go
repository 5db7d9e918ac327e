package database

import (
	"log"
	"time"

	"ambasphere-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	// 1. Roles
	roles := []model.Role{
		{RoleID: model.RoleAdmin, RoleName: "Admin"},
		{RoleID: model.RoleHR, RoleName: "HR"},
		{RoleID: model.RoleRetail, RoleName: "Retail"},
		{RoleID: model.RoleWarehouse, RoleName: "Warehouse"},
		{RoleID: model.RoleFinance, RoleName: "Finance"},
		{RoleID: model.RoleEmployee, RoleName: "Employee"},
	}
	for _, role := range roles {
		db.FirstOrCreate(&role, model.Role{RoleID: role.RoleID})
	}

	// 2. Staff category allocations
	allocations := []model.Allocation{
		{AllocationID: "A1", StaffCategory: "General Staff", AirtimeAllocation: 350, HandsetAllocation: 6000},
		{AllocationID: "A2", StaffCategory: "Supervisory", AirtimeAllocation: 500, HandsetAllocation: 9000},
		{AllocationID: "A3", StaffCategory: "Management", AirtimeAllocation: 800, HandsetAllocation: 15000},
		{AllocationID: "A4", StaffCategory: "Executive", AirtimeAllocation: 1200, HandsetAllocation: 25000},
	}
	for _, allocation := range allocations {
		db.FirstOrCreate(&allocation, model.Allocation{AllocationID: allocation.AllocationID})
	}

	// 3. Airtime packages
	packages := []model.Package{
		{PackageName: "Select 150", PaymentPeriod: 24, MonthlyPrice: 150, IsActive: true},
		{PackageName: "Select 350", PaymentPeriod: 24, MonthlyPrice: 350, IsActive: true},
		{PackageName: "Select 600", PaymentPeriod: 24, MonthlyPrice: 600, IsActive: true},
		{PackageName: "Select 1000", PaymentPeriod: 24, MonthlyPrice: 1000, IsActive: true},
	}
	for _, pkg := range packages {
		db.FirstOrCreate(&pkg, model.Package{PackageName: pkg.PackageName})
	}

	// 4. First admin account
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	started := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)

	admin := model.Staff{
		EmployeeCode:        "EMP0001",
		RoleID:              model.RoleAdmin,
		AllocationID:        "A3",
		FirstName:           "System",
		LastName:            "Administrator",
		FullName:            "System Administrator",
		UserName:            "system.administrator",
		Password:            string(hashedPassword),
		Email:               "admin@ambasphere.local",
		Position:            "System Administrator",
		Department:          "Information Technology",
		Division:            "Corporate Services",
		EmploymentCategory:  "Permanent",
		EmploymentStatus:    model.EmploymentActive,
		EmploymentStartDate: &started,
	}
	result := db.FirstOrCreate(&admin, model.Staff{EmployeeCode: admin.EmployeeCode})
	if result.Error == nil {
		// Keep the seeded password in sync even when the row already exists.
		db.Model(&admin).Update("password", string(hashedPassword))
		log.Println("Admin account seeded")
	}

	// 5. One account per department so the workflow can be exercised end to
	// end straight after seeding.
	departmentAccounts := []model.Staff{
		{EmployeeCode: "EMP0002", RoleID: model.RoleHR, AllocationID: "A2", FirstName: "Helena", LastName: "Nakale",
			Email: "hr@ambasphere.local", Position: "HR Officer", Department: "Human Resources"},
		{EmployeeCode: "EMP0003", RoleID: model.RoleRetail, AllocationID: "A1", FirstName: "Tangeni", LastName: "Shilongo",
			Email: "retail@ambasphere.local", Position: "Retail Consultant", Department: "Retail"},
		{EmployeeCode: "EMP0004", RoleID: model.RoleWarehouse, AllocationID: "A1", FirstName: "Johannes", LastName: "Amukoto",
			Email: "warehouse@ambasphere.local", Position: "Warehouse Controller", Department: "Logistics"},
		{EmployeeCode: "EMP0005", RoleID: model.RoleFinance, AllocationID: "A2", FirstName: "Maria", LastName: "Garises",
			Email: "finance@ambasphere.local", Position: "Finance Officer", Department: "Finance"},
		{EmployeeCode: "EMP0006", RoleID: model.RoleEmployee, AllocationID: "A1", FirstName: "Petrus", LastName: "Haikali",
			Email: "employee@ambasphere.local", Position: "Technician", Department: "Network Operations"},
	}
	for _, account := range departmentAccounts {
		account.FullName = account.FirstName + " " + account.LastName
		account.UserName = account.EmployeeCode
		account.Password = string(hashedPassword)
		account.EmploymentCategory = "Permanent"
		account.EmploymentStatus = model.EmploymentActive
		account.EmploymentStartDate = &started
		db.FirstOrCreate(&account, model.Staff{EmployeeCode: account.EmployeeCode})
	}
}
