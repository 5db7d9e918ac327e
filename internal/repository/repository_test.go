package repository

import (
	"fmt"
	"testing"
	"time"

	"ambasphere-backend/config"
	"ambasphere-backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, code string, roleID uint) *model.Staff {
	t.Helper()

	started := time.Now().AddDate(-2, 0, 0)
	staff := &model.Staff{
		EmployeeCode:        code,
		RoleID:              roleID,
		AllocationID:        "A1",
		FirstName:           "Test",
		LastName:            code,
		FullName:            "Test " + code,
		UserName:            code,
		Password:            "x",
		Email:               code + "@ambasphere.local",
		EmploymentStatus:    model.EmploymentActive,
		EmploymentStartDate: &started,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func TestHandsetQueues(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.Allocation{AllocationID: "A1", StaffCategory: "General", HandsetAllocation: 5000}).Error)
	seedEmployee(t, db, "EMP100", model.RoleEmployee)
	repo := NewHandsetRepository(db)

	now := time.Now()
	pendingPayment := model.Handset{
		EmployeeCode: "EMP100", AllocationID: "A1", HandsetName: "Galaxy A55", HandsetPrice: 7000,
		RequestDate: now, Status: model.StatusLimitChecked, ExcessAmount: 2000,
	}
	require.NoError(t, repo.Create(&pendingPayment))

	needsAssetCode := model.Handset{
		EmployeeCode: "EMP100", AllocationID: "A1", HandsetName: "Redmi 13", HandsetPrice: 3000,
		RequestDate: now, Status: model.StatusPaymentConfirmed, PaymentConfirmed: true,
	}
	require.NoError(t, repo.Create(&needsAssetCode))

	needsMR := model.Handset{
		EmployeeCode: "EMP100", AllocationID: "A1", HandsetName: "iPhone 15", HandsetPrice: 4500,
		RequestDate: now, Status: model.StatusAssetCodeAssigned, PaymentConfirmed: true, FixedAssetCode: "FA-001",
	}
	require.NoError(t, repo.Create(&needsMR))

	payments, err := repo.GetPendingPayments()
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, pendingPayment.ID, payments[0].ID)

	assetQueue, err := repo.GetAssetCodeQueue()
	require.NoError(t, err)
	require.Len(t, assetQueue, 1)
	require.Equal(t, needsAssetCode.ID, assetQueue[0].ID)

	mrQueue, err := repo.GetMRQueue()
	require.NoError(t, err)
	require.Len(t, mrQueue, 1)
	require.Equal(t, needsMR.ID, mrQueue[0].ID)
}

func TestFindByIDPreloadsAllocation(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.Allocation{AllocationID: "A1", StaffCategory: "General", HandsetAllocation: 5000}).Error)
	seedEmployee(t, db, "EMP105", model.RoleEmployee)
	repo := NewHandsetRepository(db)

	handset := model.Handset{
		EmployeeCode: "EMP105", AllocationID: "A1", HandsetName: "Galaxy A55", HandsetPrice: 7000,
		RequestDate: time.Now(), Status: model.StatusDeviceLocated,
	}
	require.NoError(t, repo.Create(&handset))

	loaded, err := repo.FindByID(handset.ID)
	require.NoError(t, err)
	require.Equal(t, "A1", loaded.Employee.Allocation.AllocationID)
	require.EqualValues(t, 5000, loaded.Employee.Allocation.HandsetAllocation)
}

func TestControlCardQueue(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.Allocation{AllocationID: "A1", StaffCategory: "General", HandsetAllocation: 5000}).Error)
	seedEmployee(t, db, "EMP106", model.RoleEmployee)
	repo := NewHandsetRepository(db)

	now := time.Now()
	waiting := model.Handset{
		EmployeeCode: "EMP106", AllocationID: "A1", HandsetName: "Pixel 8", HandsetPrice: 4000,
		RequestDate: now, Status: model.StatusMRCreated, MRNumber: "MR-100", MRAssignedDate: &now,
	}
	require.NoError(t, repo.Create(&waiting))

	collected := model.Handset{
		EmployeeCode: "EMP106", AllocationID: "A1", HandsetName: "Pixel 7", HandsetPrice: 4000,
		RequestDate: now, Status: model.StatusCollected, MRNumber: "MR-099", MRAssignedDate: &now,
	}
	require.NoError(t, repo.Create(&collected))

	noMR := model.Handset{
		EmployeeCode: "EMP106", AllocationID: "A1", HandsetName: "Pixel 6", HandsetPrice: 4000,
		RequestDate: now, Status: model.StatusPaymentConfirmed,
	}
	require.NoError(t, repo.Create(&noMR))

	queue, err := repo.GetControlCardQueue()
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, waiting.ID, queue[0].ID)
}

func TestPendingApprovals(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.Allocation{AllocationID: "A1", StaffCategory: "General", HandsetAllocation: 5000}).Error)
	seedEmployee(t, db, "EMP107", model.RoleEmployee)
	repo := NewHandsetRepository(db)

	now := time.Now()
	newRequest := model.Handset{
		EmployeeCode: "EMP107", AllocationID: "A1", HandsetName: "Galaxy A35", HandsetPrice: 3000,
		RequestDate: now, RequestType: model.RequestTypeNew, Status: model.StatusSubmitted,
	}
	require.NoError(t, repo.Create(&newRequest))

	renewalRequest := model.Handset{
		EmployeeCode: "EMP107", AllocationID: "A1", HandsetName: "Galaxy S24", HandsetPrice: 9000,
		RequestDate: now, RequestType: model.RequestTypeRenewal, Status: model.StatusProbationVerified,
	}
	require.NoError(t, repo.Create(&renewalRequest))

	closed := model.Handset{
		EmployeeCode: "EMP107", AllocationID: "A1", HandsetName: "Galaxy S22", HandsetPrice: 8000,
		RequestDate: now, RequestType: model.RequestTypeRenewal, Status: model.StatusCollected,
	}
	require.NoError(t, repo.Create(&closed))

	all, err := repo.GetPendingApprovals("")
	require.NoError(t, err)
	require.Len(t, all, 2)

	probation, err := repo.GetPendingApprovals(model.RequestTypeNew)
	require.NoError(t, err)
	require.Len(t, probation, 1)
	require.Equal(t, newRequest.ID, probation[0].ID)

	// Renewal filter only covers submitted renewals.
	renewals, err := repo.GetPendingApprovals(model.RequestTypeRenewal)
	require.NoError(t, err)
	require.Empty(t, renewals)
}

func TestLatestCollectedByEmployee(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.Allocation{AllocationID: "A1", StaffCategory: "General", HandsetAllocation: 5000}).Error)
	seedEmployee(t, db, "EMP101", model.RoleEmployee)
	repo := NewHandsetRepository(db)

	older := time.Now().AddDate(-4, 0, 0)
	newer := time.Now().AddDate(-1, 0, 0)
	olderRenewal := model.RenewalDateFrom(older)
	newerRenewal := model.RenewalDateFrom(newer)

	first := model.Handset{
		EmployeeCode: "EMP101", AllocationID: "A1", HandsetName: "Nokia G21", HandsetPrice: 2500,
		RequestDate: older, Status: model.StatusCollected, CollectionDate: &older, RenewalDate: &olderRenewal,
	}
	require.NoError(t, repo.Create(&first))

	second := model.Handset{
		EmployeeCode: "EMP101", AllocationID: "A1", HandsetName: "Galaxy S23", HandsetPrice: 9000,
		RequestDate: newer, Status: model.StatusCollected, CollectionDate: &newer, RenewalDate: &newerRenewal,
	}
	require.NoError(t, repo.Create(&second))

	latest, err := repo.LatestCollectedByEmployee("EMP101")
	require.NoError(t, err)
	require.Equal(t, second.ID, latest.ID)
}

func TestGetRenewalDue(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.Allocation{AllocationID: "A1", StaffCategory: "General", HandsetAllocation: 5000}).Error)
	seedEmployee(t, db, "EMP102", model.RoleEmployee)
	repo := NewHandsetRepository(db)

	collectedLongAgo := time.Now().AddDate(-3, 0, 0)
	dueRenewal := model.RenewalDateFrom(collectedLongAgo)
	due := model.Handset{
		EmployeeCode: "EMP102", AllocationID: "A1", HandsetName: "Pixel 6", HandsetPrice: 5000,
		RequestDate: collectedLongAgo, Status: model.StatusCollected,
		CollectionDate: &collectedLongAgo, RenewalDate: &dueRenewal,
	}
	require.NoError(t, repo.Create(&due))

	collectedRecently := time.Now().AddDate(0, -6, 0)
	farRenewal := model.RenewalDateFrom(collectedRecently)
	notDue := model.Handset{
		EmployeeCode: "EMP102", AllocationID: "A1", HandsetName: "Pixel 9", HandsetPrice: 8000,
		RequestDate: collectedRecently, Status: model.StatusCollected,
		CollectionDate: &collectedRecently, RenewalDate: &farRenewal,
	}
	require.NoError(t, repo.Create(&notDue))

	results, err := repo.GetRenewalDue(time.Now())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, due.ID, results[0].ID)
}

func TestReminderLedgerIdempotency(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReminderRepository(db)

	sent, err := repo.AlreadySent("handset", 1, model.ReminderHandsetRenewalWeek)
	require.NoError(t, err)
	require.False(t, sent)

	require.NoError(t, repo.Record("handset", 1, model.ReminderHandsetRenewalWeek))

	sent, err = repo.AlreadySent("handset", 1, model.ReminderHandsetRenewalWeek)
	require.NoError(t, err)
	require.True(t, sent)

	// Same entity, different kind is a separate reminder.
	sent, err = repo.AlreadySent("handset", 1, model.ReminderHandsetRenewalDue)
	require.NoError(t, err)
	require.False(t, sent)

	// Recording the same key twice violates the unique index.
	require.Error(t, repo.Record("handset", 1, model.ReminderHandsetRenewalWeek))
}
