package billing

import (
	"fmt"
	"testing"
	"time"

	"cobranzas-backend/models"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database named after the test, so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Client{},
		&models.Service{},
		&models.ContractedService{},
		&models.Invoice{},
		&models.CollectionTracking{},
		&models.Notification{},
		&models.AlertSetting{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// captureNotifier records emitted notifications for assertions.
type captureNotifier struct {
	emitted []models.Notification
}

func (c *captureNotifier) Emit(n models.Notification) *models.Notification {
	c.emitted = append(c.emitted, n)
	return &n
}

var seedSeq int

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	seedSeq++
	client := models.Client{
		Name:     fmt.Sprintf("Comercial Andina %d", seedSeq),
		RUC:      fmt.Sprintf("205%08d", seedSeq),
		Phone:    "987654321",
		Email:    fmt.Sprintf("facturacion%d@andina.pe", seedSeq),
		Status:   models.ClientActive,
		JoinDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return &client
}

func seedService(t *testing.T, db *gorm.DB) *models.Service {
	t.Helper()
	seedSeq++
	service := models.Service{
		Name:       fmt.Sprintf("Hosting web %d", seedSeq),
		Recurrence: models.RecurrenceMonthly,
		BasePrice:  150,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return &service
}

func seedInvoice(t *testing.T, db *gorm.DB, clientID, serviceID uint, amount float64, due time.Time) *models.Invoice {
	t.Helper()
	seedSeq++
	invoice := models.Invoice{
		Number:    fmt.Sprintf("F001-%05d", seedSeq),
		ClientID:  clientID,
		ServiceID: serviceID,
		IssueDate: due.AddDate(0, -1, 0),
		DueDate:   due,
		Amount:    amount,
		Status:    models.InvoicePending,
		Payments:  datatypes.JSONSlice[models.Payment]{},
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return &invoice
}

func seedContract(t *testing.T, db *gorm.DB, clientID, serviceID uint, nextPayment time.Time) *models.ContractedService {
	t.Helper()
	contract := models.ContractedService{
		ClientID:    clientID,
		ServiceID:   serviceID,
		StartDate:   nextPayment.AddDate(0, -1, 0),
		NextPayment: nextPayment,
		Price:       150,
		Status:      models.ContractActive,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	return &contract
}
