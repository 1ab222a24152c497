package dto

// AttendanceEntry is one employee's status for a day.
// Date is ISO YYYY-MM-DD; all entries in one request must share it.
type AttendanceEntry struct {
	EmployeeID   int64  `json:"employeeId"   validate:"required,min=1"`
	EmployeeName string `json:"employeeName" validate:"required"`
	EmployeeRole string `json:"employeeRole"`
	Date         string `json:"date"         validate:"required,datetime=2006-01-02"`
	Status       string `json:"status"       validate:"required,oneof=present absent leave halfday"`
	Remarks      string `json:"remarks"`
}

// MarkAttendanceRequest replaces the whole day's roster in one call.
type MarkAttendanceRequest struct {
	AttendanceData []AttendanceEntry `json:"attendanceData" validate:"required,min=1,dive"`
}

type AttendanceRecordResponse struct {
	ID           int64  `json:"id"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeRole string `json:"employee_role,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Remarks      string `json:"remarks,omitempty"`
}
