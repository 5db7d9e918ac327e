package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ambasphere-backend/config"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	require.NoError(t, db.Create(&model.Allocation{
		AllocationID: "A1", StaffCategory: "General Staff",
		AirtimeAllocation: 350, HandsetAllocation: 5000,
	}).Error)

	app := fiber.New()
	notifier := service.NewNotifier(db)
	SetupAuthRoutes(app, db)
	SetupStaffRoutes(app, db, notifier)
	SetupPackageRoutes(app, db)
	SetupHandsetRoutes(app, db, notifier)
	SetupContractRoutes(app, db, notifier)
	SetupNotificationRoutes(app, db)
	SetupEventRoutes(app, db)
	SetupReportRoutes(app, db)
	return app, db
}

func seedEmployee(t *testing.T, db *gorm.DB, code string, roleID uint) *model.Staff {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	started := time.Now().AddDate(-2, 0, 0)
	staff := &model.Staff{
		EmployeeCode:        code,
		RoleID:              roleID,
		AllocationID:        "A1",
		FirstName:           "Test",
		LastName:            code,
		FullName:            "Test " + code,
		UserName:            code,
		Password:            string(hashed),
		Email:               code + "@ambasphere.local",
		EmploymentStatus:    model.EmploymentActive,
		EmploymentStartDate: &started,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func tokenFor(t *testing.T, staff *model.Staff) string {
	t.Helper()

	claims := jwt.MapClaims{
		"employee_code": staff.EmployeeCode,
		"full_name":     staff.FullName,
		"role_id":       staff.RoleID,
		"exp":           time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.TokenKey())
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, url, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()

	payload, ok := body["data"].(map[string]interface{})
	require.Truef(t, ok, "response has no data object: %v", body)
	return payload
}

func TestLogin(t *testing.T) {
	app, db := setupApp(t)
	seedEmployee(t, db, "EMP0001", model.RoleEmployee)

	status, body := doJSON(t, app, http.MethodPost, "/api/login", "", fiber.Map{
		"Email": "EMP0001@ambasphere.local", "Password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])
	require.NotEmpty(t, body["refreshToken"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/login", "", fiber.Map{
		"Email": "EMP0001@ambasphere.local", "Password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestRoleGate(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0002", model.RoleEmployee)

	status, _ := doJSON(t, app, http.MethodGet, "/api/handsets/pending-verifications", tokenFor(t, employee), nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/handsets/pending-verifications", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestHandsetWorkflowWithinAllocation(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0010", model.RoleEmployee)
	hr := seedEmployee(t, db, "HR0001", model.RoleHR)
	warehouse := seedEmployee(t, db, "WH0001", model.RoleWarehouse)
	finance := seedEmployee(t, db, "FIN0001", model.RoleFinance)
	retail := seedEmployee(t, db, "RET0001", model.RoleRetail)

	status, body := doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, employee), fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	require.Equal(t, http.StatusCreated, status)
	created := data(t, body)
	require.Equal(t, string(model.StatusSubmitted), created["Status"])
	require.Equal(t, string(model.RequestTypeNew), created["RequestType"])
	id := int(created["ID"].(float64))
	base := fmt.Sprintf("/api/handsets/%d", id)

	status, body = doJSON(t, app, http.MethodPut, base+"/verify-probation", tokenFor(t, hr), nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, string(model.StatusProbationVerified), data(t, body)["Status"])

	status, body = doJSON(t, app, http.MethodPut, base+"/imei", tokenFor(t, warehouse), fiber.Map{
		"IMEINumber": "123456789012345", "DeviceLocation": "Main Warehouse",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, string(model.StatusDeviceLocated), data(t, body)["Status"])

	// Price fits the allocation, so payment confirmation is automatic.
	status, body = doJSON(t, app, http.MethodPut, base+"/share-imei", tokenFor(t, warehouse), nil)
	require.Equal(t, http.StatusOK, status)
	shared := data(t, body)
	require.Equal(t, string(model.StatusPaymentConfirmed), shared["Status"])
	require.Equal(t, "Ambasphere System", shared["PaymentConfirmedBy"])
	require.EqualValues(t, 0, shared["ExcessAmount"])

	status, body = doJSON(t, app, http.MethodPut, base+"/asset-code", tokenFor(t, finance), fiber.Map{
		"FixedAssetCode": "FA-1001",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, string(model.StatusAssetCodeAssigned), data(t, body)["Status"])

	status, body = doJSON(t, app, http.MethodPut, base+"/mr-number", tokenFor(t, warehouse), fiber.Map{
		"MRNumber": "MR-555",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, string(model.StatusMRCreated), data(t, body)["Status"])

	// The card voucher is generated server side.
	status, body = doJSON(t, app, http.MethodPut, base+"/control-card", tokenFor(t, retail), nil)
	require.Equal(t, http.StatusOK, status)
	printed := data(t, body)
	require.Equal(t, string(model.StatusReadyForCollection), printed["Status"])
	require.Equal(t, fmt.Sprintf("CC-%04d", id), printed["ControlCardNumber"])
	require.NotEmpty(t, printed["ControlCardUrl"])

	status, body = doJSON(t, app, http.MethodPut, base+"/collection-proof", tokenFor(t, retail), fiber.Map{
		"CollectionProofUrl": "/uploads/proofs/proof-1.pdf", "SignatureCaptured": true,
	})
	require.Equal(t, http.StatusOK, status)
	collected := data(t, body)
	require.Equal(t, string(model.StatusCollected), collected["Status"])

	var stored model.Handset
	require.NoError(t, db.First(&stored, id).Error)
	require.NotNil(t, stored.RenewalDate)
	require.NotNil(t, stored.CollectionDate)
	require.WithinDuration(t, stored.CollectionDate.AddDate(2, 0, 0), *stored.RenewalDate, time.Second)
}

func TestHandsetExcessPaymentFlow(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0011", model.RoleEmployee)
	hr := seedEmployee(t, db, "HR0002", model.RoleHR)
	warehouse := seedEmployee(t, db, "WH0002", model.RoleWarehouse)
	finance := seedEmployee(t, db, "FIN0002", model.RoleFinance)

	status, body := doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, employee), fiber.Map{
		"HandsetName": "iPhone 15 Pro", "HandsetPrice": 7000,
	})
	require.Equal(t, http.StatusCreated, status)
	id := int(data(t, body)["ID"].(float64))
	base := fmt.Sprintf("/api/handsets/%d", id)

	status, _ = doJSON(t, app, http.MethodPut, base+"/verify-probation", tokenFor(t, hr), nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodPut, base+"/imei", tokenFor(t, warehouse), fiber.Map{
		"IMEINumber": "987654321098765",
	})
	require.Equal(t, http.StatusOK, status)

	// The excess keeps the request parked at the limit check.
	status, body = doJSON(t, app, http.MethodPut, base+"/share-imei", tokenFor(t, warehouse), nil)
	require.Equal(t, http.StatusOK, status)
	shared := data(t, body)
	require.Equal(t, string(model.StatusLimitChecked), shared["Status"])
	require.EqualValues(t, 2000, shared["ExcessAmount"])
	require.Equal(t, false, shared["PaymentConfirmed"])

	// Asset codes are refused until finance confirms the excess.
	status, _ = doJSON(t, app, http.MethodPut, base+"/asset-code", tokenFor(t, finance), fiber.Map{
		"FixedAssetCode": "FA-2001",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPut, base+"/confirm-payment", tokenFor(t, finance), nil)
	require.Equal(t, http.StatusOK, status)
	confirmed := data(t, body)
	require.Equal(t, string(model.StatusPaymentConfirmed), confirmed["Status"])
	// A confirmed excess settles the limit check.
	require.Equal(t, true, confirmed["WithinLimit"])

	status, _ = doJSON(t, app, http.MethodPut, base+"/confirm-payment", tokenFor(t, finance), nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHandsetIntakeRules(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0012", model.RoleEmployee)
	token := tokenFor(t, employee)

	status, _ := doJSON(t, app, http.MethodPost, "/api/handsets", token, fiber.Map{
		"HandsetName": "Galaxy A55",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/handsets", token, fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	require.Equal(t, http.StatusCreated, status)
	id := int(data(t, body)["ID"].(float64))

	// Only one open request at a time.
	status, _ = doJSON(t, app, http.MethodPost, "/api/handsets", token, fiber.Map{
		"HandsetName": "Redmi 13", "HandsetPrice": 3000,
	})
	require.Equal(t, http.StatusBadRequest, status)

	// Submitted requests can be withdrawn.
	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/handsets/%d", id), token, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestHandsetRenewalEligibility(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0013", model.RoleEmployee)
	finance := seedEmployee(t, db, "FIN0010", model.RoleFinance)
	retail := seedEmployee(t, db, "RET0010", model.RoleRetail)
	token := tokenFor(t, employee)

	// Previous device collected a year ago: renewable only next year.
	collected := time.Now().AddDate(-1, 0, 0)
	renewal := model.RenewalDateFrom(collected)
	require.NoError(t, db.Create(&model.Handset{
		EmployeeCode: employee.EmployeeCode, AllocationID: "A1",
		HandsetName: "Nokia G21", HandsetPrice: 2500, RequestDate: collected,
		Status: model.StatusCollected, CollectionDate: &collected, RenewalDate: &renewal,
	}).Error)

	status, _ := doJSON(t, app, http.MethodPost, "/api/handsets", token, fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	require.Equal(t, http.StatusBadRequest, status)

	// Age the collection past the two year mark and try again.
	old := time.Now().AddDate(-3, 0, 0)
	oldRenewal := model.RenewalDateFrom(old)
	require.NoError(t, db.Model(&model.Handset{}).
		Where("employee_code = ?", employee.EmployeeCode).
		Updates(map[string]interface{}{"collection_date": old, "renewal_date": oldRenewal}).Error)

	status, body := doJSON(t, app, http.MethodPost, "/api/handsets", token, fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	require.Equal(t, http.StatusCreated, status)
	created := data(t, body)
	require.Equal(t, string(model.RequestTypeRenewal), created["RequestType"])
	// Probation is already served, so the renewal skips that step and
	// waits for finance, not for HR.
	require.Equal(t, string(model.StatusProbationVerified), created["Status"])
	require.Equal(t, true, created["ProbationVerified"])
	require.Equal(t, "Ambasphere System", created["ProbationVerifiedBy"])
	require.Equal(t, false, created["RenewalVerified"])
	// The prior device's renewal date rides along until a new collection.
	require.NotEmpty(t, created["RenewalDate"])
	id := int(created["ID"].(float64))
	base := fmt.Sprintf("/api/handsets/%d", id)

	// Finance hears about the renewal at submission.
	var financeAlerts int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("recipient_employee_code = ? AND type = ?", finance.EmployeeCode, "Handset Renewal Request").
		Count(&financeAlerts).Error)
	require.EqualValues(t, 1, financeAlerts)

	status, body = doJSON(t, app, http.MethodPut, base+"/verify-renewal", tokenFor(t, finance), nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, string(model.StatusRenewalVerified), data(t, body)["Status"])

	// Reservation needs the store, a valid IMEI and the device location.
	status, _ = doJSON(t, app, http.MethodPut, base+"/reserve", tokenFor(t, retail), fiber.Map{
		"IMEINumber": "111222333444555", "DeviceLocation": "Back store",
	})
	require.Equal(t, http.StatusBadRequest, status)
	status, _ = doJSON(t, app, http.MethodPut, base+"/reserve", tokenFor(t, retail), fiber.Map{
		"StoreName": "Main Street", "IMEINumber": "12345", "DeviceLocation": "Back store",
	})
	require.Equal(t, http.StatusBadRequest, status)
	status, _ = doJSON(t, app, http.MethodPut, base+"/reserve", tokenFor(t, retail), fiber.Map{
		"StoreName": "Main Street", "IMEINumber": "111222333444555", "DeviceLocation": "  ",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPut, base+"/reserve", tokenFor(t, retail), fiber.Map{
		"StoreName": "Main Street", "IMEINumber": "111222333444555", "DeviceLocation": "Back store",
	})
	require.Equal(t, http.StatusOK, status)
	reserved := data(t, body)
	require.Equal(t, true, reserved["Reserved"])
	require.Equal(t, string(model.StatusDeviceLocated), reserved["Status"])
	require.Equal(t, "Main Street", reserved["StoreName"])
	require.Equal(t, "111222333444555", reserved["IMEINumber"])

	// A reserved request cannot be reserved twice.
	status, _ = doJSON(t, app, http.MethodPut, base+"/reserve", tokenFor(t, retail), fiber.Map{
		"StoreName": "Main Street", "IMEINumber": "111222333444556", "DeviceLocation": "Back store",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestProbationVerificationRejection(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0017", model.RoleEmployee)
	hr := seedEmployee(t, db, "HR0006", model.RoleHR)

	_, body := doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, employee), fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	id := int(data(t, body)["ID"].(float64))
	base := fmt.Sprintf("/api/handsets/%d", id)

	status, body := doJSON(t, app, http.MethodPut, base+"/verify-probation", tokenFor(t, hr), fiber.Map{
		"Approved": false,
	})
	require.Equal(t, http.StatusOK, status)
	rejected := data(t, body)
	require.Equal(t, string(model.StatusRejected), rejected["Status"])
	require.Equal(t, false, rejected["ProbationVerified"])
	require.Equal(t, "Probation Not Completed", rejected["RejectionReason"])
}

func TestRenewalVerificationRejection(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0018", model.RoleEmployee)
	finance := seedEmployee(t, db, "FIN0011", model.RoleFinance)
	token := tokenFor(t, employee)

	old := time.Now().AddDate(-3, 0, 0)
	oldRenewal := model.RenewalDateFrom(old)
	require.NoError(t, db.Create(&model.Handset{
		EmployeeCode: employee.EmployeeCode, AllocationID: "A1",
		HandsetName: "Nokia G21", HandsetPrice: 2500, RequestDate: old,
		Status: model.StatusCollected, CollectionDate: &old, RenewalDate: &oldRenewal,
	}).Error)

	_, body := doJSON(t, app, http.MethodPost, "/api/handsets", token, fiber.Map{
		"HandsetName": "Galaxy S24", "HandsetPrice": 9000,
	})
	id := int(data(t, body)["ID"].(float64))
	base := fmt.Sprintf("/api/handsets/%d", id)

	nextEligible := time.Now().AddDate(0, 6, 0).Format("2006-01-02")
	status, body := doJSON(t, app, http.MethodPut, base+"/verify-renewal", tokenFor(t, finance), fiber.Map{
		"Approved": false, "RenewalDate": nextEligible,
	})
	require.Equal(t, http.StatusOK, status)
	rejected := data(t, body)
	require.Equal(t, string(model.StatusRejected), rejected["Status"])
	require.Equal(t, false, rejected["RenewalVerified"])
	require.Equal(t, "Renewal request rejected by finance team", rejected["RejectionReason"])

	// The caller supplied the next date the employee becomes eligible.
	var stored model.Handset
	require.NoError(t, db.First(&stored, id).Error)
	require.NotNil(t, stored.RenewalDate)
	require.Equal(t, nextEligible, stored.RenewalDate.Format("2006-01-02"))

	// Probation verification never applies to renewals.
	status, _ = doJSON(t, app, http.MethodPut, base+"/verify-probation", tokenFor(t, seedEmployee(t, db, "HR0007", model.RoleHR)), nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHandsetIntakeWithCollectionDate(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0019", model.RoleEmployee)

	// HR backfills an already collected device.
	status, body := doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, employee), fiber.Map{
		"HandsetName": "Galaxy A35", "HandsetPrice": 3000, "CollectionDate": "2024-03-15",
	})
	require.Equal(t, http.StatusCreated, status)
	created := data(t, body)
	require.Equal(t, string(model.StatusCollected), created["Status"])

	var stored model.Handset
	require.NoError(t, db.First(&stored, int(created["ID"].(float64))).Error)
	require.NotNil(t, stored.CollectionDate)
	require.NotNil(t, stored.RenewalDate)
	require.WithinDuration(t, stored.CollectionDate.AddDate(2, 0, 0), *stored.RenewalDate, time.Second)

	// A declared excess marks the request out of limit from the start.
	other := seedEmployee(t, db, "EMP0020", model.RoleEmployee)
	status, body = doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, other), fiber.Map{
		"HandsetName": "iPhone 15 Pro", "HandsetPrice": 7000, "ExcessAmount": 2000,
	})
	require.Equal(t, http.StatusCreated, status)
	declared := data(t, body)
	require.Equal(t, false, declared["WithinLimit"])
	require.EqualValues(t, 2000, declared["ExcessAmount"])
}

func TestPendingApprovalsDashboard(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0021", model.RoleEmployee)
	finance := seedEmployee(t, db, "FIN0012", model.RoleFinance)

	_, body := doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, employee), fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	require.NotNil(t, body["data"])

	status, body := doJSON(t, app, http.MethodGet, "/api/handsets/pending-approvals", tokenFor(t, finance), nil)
	require.Equal(t, http.StatusOK, status)
	entries, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	require.Equal(t, "NORMAL", entry["Priority"])
	require.Equal(t, employee.FullName, entry["EmployeeName"])
	summary := body["summary"].(map[string]interface{})
	require.EqualValues(t, 1, summary["Total"])
	require.EqualValues(t, 1, summary["Probation"])

	status, body = doJSON(t, app, http.MethodGet, "/api/handsets/pending-approvals?type=renewal", tokenFor(t, finance), nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["data"])

	status, body = doJSON(t, app, http.MethodGet, "/api/handsets/renewal-verifications", tokenFor(t, finance), nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body["summary"])
}

func TestIMEIValidation(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0014", model.RoleEmployee)
	hr := seedEmployee(t, db, "HR0003", model.RoleHR)
	warehouse := seedEmployee(t, db, "WH0003", model.RoleWarehouse)

	_, body := doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, employee), fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	id := int(data(t, body)["ID"].(float64))
	base := fmt.Sprintf("/api/handsets/%d", id)

	doJSON(t, app, http.MethodPut, base+"/verify-probation", tokenFor(t, hr), nil)

	for _, imei := range []string{"", "12345", "1234567890123456", "12345678901234a"} {
		status, _ := doJSON(t, app, http.MethodPut, base+"/imei", tokenFor(t, warehouse), fiber.Map{
			"IMEINumber": imei,
		})
		require.Equalf(t, http.StatusBadRequest, status, "imei %q", imei)
	}
}

func TestStatusEndpointRejectsIllegalJump(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0015", model.RoleEmployee)
	admin := seedEmployee(t, db, "ADM0001", model.RoleAdmin)

	_, body := doJSON(t, app, http.MethodPost, "/api/handsets", tokenFor(t, employee), fiber.Map{
		"HandsetName": "Galaxy A55", "HandsetPrice": 4500,
	})
	id := int(data(t, body)["ID"].(float64))
	base := fmt.Sprintf("/api/handsets/%d", id)

	status, _ := doJSON(t, app, http.MethodPut, base+"/status", tokenFor(t, admin), fiber.Map{
		"Status": string(model.StatusPaymentConfirmed),
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPut, base+"/status", tokenFor(t, admin), fiber.Map{
		"Status": "Teleported",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPut, base+"/status", tokenFor(t, admin), fiber.Map{
		"Status": string(model.StatusRejected), "Reason": "Out of stock",
	})
	require.Equal(t, http.StatusOK, status)
}

func TestContractLifecycle(t *testing.T) {
	app, db := setupApp(t)
	employee := seedEmployee(t, db, "EMP0016", model.RoleEmployee)
	hr := seedEmployee(t, db, "HR0004", model.RoleHR)
	require.NoError(t, db.Create(&model.Package{
		PackageName: "Select 350", PaymentPeriod: 24, MonthlyPrice: 350, IsActive: true,
	}).Error)

	// Package price exceeds the N$350 airtime allocation once the device
	// instalment is added.
	status, body := doJSON(t, app, http.MethodPost, "/api/contracts", tokenFor(t, employee), fiber.Map{
		"PackageID": 1, "ContractDuration": 24, "DeviceMonthlyPrice": 100, "DeviceName": "Galaxy A55",
	})
	require.Equal(t, http.StatusCreated, status)
	created := data(t, body)
	require.Equal(t, model.ApprovalPending, created["ApprovalStatus"])
	require.Equal(t, model.LimitExceeding, created["LimitCheck"])
	require.EqualValues(t, 450, created["MonthlyPayment"])
	id := int(created["ContractNumber"].(float64))

	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/contracts/%d/approve", id), tokenFor(t, hr), nil)
	require.Equal(t, http.StatusOK, status)
	approved := data(t, body)
	require.Equal(t, model.ApprovalApproved, approved["ApprovalStatus"])
	require.Equal(t, model.SubscriptionOngoing, approved["SubscriptionStatus"])

	var stored model.Contract
	require.NoError(t, db.First(&stored, id).Error)
	require.NotNil(t, stored.ContractStartDate)
	require.NotNil(t, stored.ContractEndDate)
	require.WithinDuration(t, stored.ContractStartDate.AddDate(0, 24, 0), *stored.ContractEndDate, time.Second)

	// Processed contracts cannot be approved or rejected again.
	status, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/contracts/%d/reject", id), tokenFor(t, hr), fiber.Map{
		"Reason": "Changed my mind",
	})
	require.Equal(t, http.StatusConflict, status)
}

func TestStaffCreateDuplicateConflict(t *testing.T) {
	app, db := setupApp(t)
	hr := seedEmployee(t, db, "HR0005", model.RoleHR)
	token := tokenFor(t, hr)

	payload := fiber.Map{
		"EmployeeCode": "EMP0100", "FirstName": "Ndapewa", "LastName": "Iipinge",
		"Email": "ndapewa@ambasphere.local", "RoleID": model.RoleEmployee, "AllocationID": "A1",
	}
	status, _ := doJSON(t, app, http.MethodPost, "/api/staff", token, payload)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/staff", token, payload)
	require.Equal(t, http.StatusConflict, status)
}
