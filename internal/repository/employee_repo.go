package repository

import (
	"context"
	"time"

	"restomate/internal/model"
	"restomate/internal/tenant"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	List(ctx context.Context, restaurantID int64) ([]model.Employee, error)
	FindByID(ctx context.Context, restaurantID, employeeID int64) (*model.Employee, error)
	CreateTx(ctx context.Context, tx *gorm.DB, restaurantID int64, e *model.Employee) error
	Update(ctx context.Context, restaurantID int64, e *model.Employee) error
	Delete(ctx context.Context, restaurantID, employeeID int64) error

	// Attendance — the day's roster is replaced wholesale inside one
	// transaction: delete everything for the date, insert the new batch.
	EnsureAttendanceTableTx(ctx context.Context, tx *gorm.DB, restaurantID int64) error
	DeleteAttendanceDayTx(ctx context.Context, tx *gorm.DB, restaurantID int64, date time.Time) error
	InsertAttendanceTx(ctx context.Context, tx *gorm.DB, restaurantID int64, rec *model.AttendanceRecord) error
	ListAttendanceByDate(ctx context.Context, restaurantID int64, date time.Time) ([]model.AttendanceRecord, error)

	DB() *gorm.DB
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) DB() *gorm.DB { return r.db }

func (r *employeeRepo) table(restaurantID int64) string {
	return tenant.Table(tenant.Employees, restaurantID)
}

func (r *employeeRepo) attendanceTable(restaurantID int64) string {
	return tenant.Table(tenant.Attendance, restaurantID)
}

func (r *employeeRepo) List(ctx context.Context, restaurantID int64) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) FindByID(ctx context.Context, restaurantID, employeeID int64) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Where("id = ?", employeeID).First(&e).Error
	return &e, err
}

func (r *employeeRepo) CreateTx(ctx context.Context, tx *gorm.DB, restaurantID int64, e *model.Employee) error {
	return tx.WithContext(ctx).Table(r.table(restaurantID)).Create(e).Error
}

func (r *employeeRepo) Update(ctx context.Context, restaurantID int64, e *model.Employee) error {
	res := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"name":  e.Name,
			"email": e.Email,
			"phone": e.Phone,
			"role":  e.Role,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, restaurantID, employeeID int64) error {
	res := r.db.WithContext(ctx).Table(r.table(restaurantID)).
		Where("id = ?", employeeID).Delete(&model.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EnsureAttendanceTableTx keeps attendance writable for tenants provisioned
// before the attendance table was part of the standard set. CREATE TABLE IF
// NOT EXISTS is a no-op for everyone else.
func (r *employeeRepo) EnsureAttendanceTableTx(ctx context.Context, tx *gorm.DB, restaurantID int64) error {
	return tx.WithContext(ctx).Exec(attendanceDDL(r.attendanceTable(restaurantID))).Error
}

func (r *employeeRepo) DeleteAttendanceDayTx(ctx context.Context, tx *gorm.DB, restaurantID int64, date time.Time) error {
	return tx.WithContext(ctx).Table(r.attendanceTable(restaurantID)).
		Where("date = ?", date.Format("2006-01-02")).
		Delete(&model.AttendanceRecord{}).Error
}

func (r *employeeRepo) InsertAttendanceTx(ctx context.Context, tx *gorm.DB, restaurantID int64, rec *model.AttendanceRecord) error {
	return tx.WithContext(ctx).Table(r.attendanceTable(restaurantID)).Create(rec).Error
}

func (r *employeeRepo) ListAttendanceByDate(ctx context.Context, restaurantID int64, date time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).Table(r.attendanceTable(restaurantID)).
		Where("date = ?", date.Format("2006-01-02")).
		Order("employee_name ASC").
		Find(&records).Error
	return records, err
}
