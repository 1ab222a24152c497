package model

import "time"

// Attendance statuses. The tenant table carries a matching CHECK constraint.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLeave   = "leave"
	AttendanceHalfday = "halfday"
)

// AttendanceRecord is a row in attendance_<restaurantID>.
// At most one row per (employee, date): the whole day's roster is replaced
// on every write, not upserted row by row.
type AttendanceRecord struct {
	ID           int64 `gorm:"primaryKey"`
	EmployeeID   int64
	EmployeeName string
	EmployeeRole string
	Date         time.Time `gorm:"type:date"`
	Status       string
	Remarks      string
	CreatedAt    time.Time
}
