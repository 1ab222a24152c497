package repository

import (
	"context"
	"fmt"

	"restomate/internal/model"
	"restomate/internal/tenant"

	"gorm.io/gorm"
)

type RestaurantRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, r *model.Restaurant) error
	// ProvisionTenantTx creates the full per-tenant table set. Runs inside the
	// registration transaction so a failed DDL rolls the whole signup back.
	ProvisionTenantTx(ctx context.Context, tx *gorm.DB, restaurantID int64) error
	FindByID(ctx context.Context, id int64) (*model.Restaurant, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type restaurantRepo struct{ db *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository { return &restaurantRepo{db: db} }

func (r *restaurantRepo) DB() *gorm.DB { return r.db }

func (r *restaurantRepo) CreateTx(ctx context.Context, tx *gorm.DB, rest *model.Restaurant) error {
	return tx.WithContext(ctx).Create(rest).Error
}

func (r *restaurantRepo) FindByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).First(&rest, id).Error
	return &rest, err
}

// tenantDDL returns the CREATE TABLE statements for one tenant, in dependency
// order. PostgreSQL DDL is transactional, so these participate in the
// registration transaction like any other statement.
func tenantDDL(restaurantID int64) []string {
	employees := tenant.Table(tenant.Employees, restaurantID)
	menu := tenant.Table(tenant.Menu, restaurantID)
	bills := tenant.Table(tenant.Bills, restaurantID)
	billItems := tenant.Table(tenant.BillItems, restaurantID)
	attendance := tenant.Table(tenant.Attendance, restaurantID)

	return []string{
		fmt.Sprintf(`CREATE TABLE %s (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			phone      TEXT NOT NULL DEFAULT '',
			role       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, employees),
		fmt.Sprintf(`CREATE TABLE %s (
			id          BIGSERIAL PRIMARY KEY,
			item_name   TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			category    TEXT NOT NULL DEFAULT '',
			available   BOOLEAN NOT NULL DEFAULT true,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, menu),
		fmt.Sprintf(`CREATE TABLE %s (
			id             BIGSERIAL PRIMARY KEY,
			restaurant_id  BIGINT NOT NULL,
			bill_number    INT NOT NULL DEFAULT 0,
			bill_date      TIMESTAMPTZ NOT NULL DEFAULT now(),
			employee_id    BIGINT,
			employee_name  TEXT NOT NULL DEFAULT '',
			customer_name  TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT '',
			total_amount   NUMERIC(12,2) NOT NULL CHECK (total_amount >= 0),
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, bills),
		fmt.Sprintf(`CREATE INDEX idx_%s_date ON %s (bill_date)`, bills, bills),
		fmt.Sprintf(`CREATE TABLE %s (
			id        BIGSERIAL PRIMARY KEY,
			bill_id   BIGINT NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
			item_id   BIGINT NOT NULL,
			item_name TEXT NOT NULL,
			quantity  INT NOT NULL CHECK (quantity > 0),
			price     NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			subtotal  NUMERIC(12,2) NOT NULL
		)`, billItems, bills),
		fmt.Sprintf(`CREATE INDEX idx_%s_bill ON %s (bill_id)`, billItems, billItems),
		attendanceDDL(attendance),
		fmt.Sprintf(`CREATE INDEX idx_%s_date ON %s (date)`, attendance, attendance),
	}
}

// attendanceDDL is shared with the lazy-create guard in the employee
// repository: tenants provisioned before attendance tables existed still get
// one on first write.
func attendanceDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id            BIGSERIAL PRIMARY KEY,
		employee_id   BIGINT NOT NULL,
		employee_name TEXT NOT NULL,
		employee_role TEXT NOT NULL DEFAULT '',
		date          DATE NOT NULL,
		status        TEXT NOT NULL CHECK (status IN ('present','absent','leave','halfday')),
		remarks       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, table)
}

func (r *restaurantRepo) ProvisionTenantTx(ctx context.Context, tx *gorm.DB, restaurantID int64) error {
	for _, stmt := range tenantDDL(restaurantID) {
		if err := tx.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("provision tenant %d: %w", restaurantID, err)
		}
	}
	return nil
}
