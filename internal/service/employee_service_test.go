package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"restomate/internal/dto"
	"restomate/internal/model"
	"restomate/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stub ──────────────────────────────────────────────────────────────────────

// stubEmployeeRepo keys attendance by "restaurantID|date" the way the real
// tables key by tenant and day.
type stubEmployeeRepo struct {
	employees  map[int64][]*model.Employee
	attendance map[string][]model.AttendanceRecord
	ensured    []int64
	nextID     int64
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{
		employees:  make(map[int64][]*model.Employee),
		attendance: make(map[string][]model.AttendanceRecord),
	}
}

func dayKey(restaurantID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", restaurantID, date.Format("2006-01-02"))
}

func (r *stubEmployeeRepo) List(_ context.Context, restaurantID int64) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees[restaurantID] {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, restaurantID, employeeID int64) (*model.Employee, error) {
	for _, e := range r.employees[restaurantID] {
		if e.ID == employeeID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) CreateTx(_ context.Context, _ *gorm.DB, restaurantID int64, e *model.Employee) error {
	r.nextID++
	e.ID = r.nextID
	r.employees[restaurantID] = append(r.employees[restaurantID], e)
	return nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, restaurantID int64, e *model.Employee) error {
	for _, existing := range r.employees[restaurantID] {
		if existing.ID == e.ID {
			*existing = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) Delete(_ context.Context, restaurantID, employeeID int64) error {
	list := r.employees[restaurantID]
	for i, e := range list {
		if e.ID == employeeID {
			r.employees[restaurantID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) EnsureAttendanceTableTx(_ context.Context, _ *gorm.DB, restaurantID int64) error {
	r.ensured = append(r.ensured, restaurantID)
	return nil
}

func (r *stubEmployeeRepo) DeleteAttendanceDayTx(_ context.Context, _ *gorm.DB, restaurantID int64, date time.Time) error {
	delete(r.attendance, dayKey(restaurantID, date))
	return nil
}

func (r *stubEmployeeRepo) InsertAttendanceTx(_ context.Context, _ *gorm.DB, restaurantID int64, rec *model.AttendanceRecord) error {
	key := dayKey(restaurantID, rec.Date)
	rec.ID = int64(len(r.attendance[key]) + 1)
	r.attendance[key] = append(r.attendance[key], *rec)
	return nil
}

func (r *stubEmployeeRepo) ListAttendanceByDate(_ context.Context, restaurantID int64, date time.Time) ([]model.AttendanceRecord, error) {
	return r.attendance[dayKey(restaurantID, date)], nil
}

func (r *stubEmployeeRepo) DB() *gorm.DB { return nil }

var _ repository.EmployeeRepository = (*stubEmployeeRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestEmployeeCRUD(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, dto.CreateEmployeeRequest{
		Name: "Asha", Email: "asha@example.com", Role: "staff",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := svc.Update(ctx, 1, created.ID, dto.UpdateEmployeeRequest{Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "manager", updated.Role)
	assert.Equal(t, "Asha", updated.Name) // untouched fields survive

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	err = svc.Delete(ctx, 1, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkAttendance_ReplacesDayRoster(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	first := dto.MarkAttendanceRequest{AttendanceData: []dto.AttendanceEntry{
		{EmployeeID: 1, EmployeeName: "Asha", Date: "2026-03-10", Status: "present"},
		{EmployeeID: 2, EmployeeName: "Ravi", Date: "2026-03-10", Status: "absent"},
	}}
	n, err := svc.MarkAttendance(ctx, 1, first)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Second write for the same day replaces, not appends
	second := dto.MarkAttendanceRequest{AttendanceData: []dto.AttendanceEntry{
		{EmployeeID: 1, EmployeeName: "Asha", Date: "2026-03-10", Status: "halfday", Remarks: "left early"},
	}}
	n, err = svc.MarkAttendance(ctx, 1, second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := svc.AttendanceByDate(ctx, 1, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "halfday", records[0].Status)
	assert.Equal(t, "left early", records[0].Remarks)

	// Attendance table guard ran on both writes
	assert.Equal(t, []int64{1, 1}, repo.ensured)
}

func TestMarkAttendance_MixedDatesRejected(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	req := dto.MarkAttendanceRequest{AttendanceData: []dto.AttendanceEntry{
		{EmployeeID: 1, EmployeeName: "Asha", Date: "2026-03-10", Status: "present"},
		{EmployeeID: 2, EmployeeName: "Ravi", Date: "2026-03-11", Status: "present"},
	}}
	_, err := svc.MarkAttendance(context.Background(), 1, req)
	assert.ErrorContains(t, err, "same date")
}

func TestMarkAttendance_BadInput(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, 1, dto.MarkAttendanceRequest{})
	assert.ErrorContains(t, err, "empty")

	_, err = svc.MarkAttendance(ctx, 1, dto.MarkAttendanceRequest{AttendanceData: []dto.AttendanceEntry{
		{EmployeeID: 1, EmployeeName: "Asha", Date: "10/03/2026", Status: "present"},
	}})
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestAttendanceByDate_OtherDayEmpty(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, 1, dto.MarkAttendanceRequest{AttendanceData: []dto.AttendanceEntry{
		{EmployeeID: 1, EmployeeName: "Asha", Date: "2026-03-10", Status: "present"},
	}})
	require.NoError(t, err)

	records, err := svc.AttendanceByDate(ctx, 1, "2026-03-11")
	require.NoError(t, err)
	assert.Empty(t, records)
}
