package service

import (
	"context"
	"time"

	"restomate/internal/dto"
	"restomate/internal/model"
	"restomate/internal/repository"

	"gorm.io/gorm"
)

type EmployeeService interface {
	List(ctx context.Context, restaurantID int64) ([]dto.EmployeeResponse, error)
	Get(ctx context.Context, restaurantID, employeeID int64) (*dto.EmployeeResponse, error)
	Create(ctx context.Context, restaurantID int64, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, restaurantID, employeeID int64, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, restaurantID, employeeID int64) error

	// MarkAttendance replaces the whole roster for one date. All entries must
	// share that date; delete-then-insert runs in a single transaction so a
	// failed batch leaves the previous roster intact.
	MarkAttendance(ctx context.Context, restaurantID int64, req dto.MarkAttendanceRequest) (int, error)
	AttendanceByDate(ctx context.Context, restaurantID int64, date string) ([]dto.AttendanceRecordResponse, error)
}

type employeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeService(employees repository.EmployeeRepository) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) List(ctx context.Context, restaurantID int64) ([]dto.EmployeeResponse, error) {
	employees, err := s.employees.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, toEmployeeResponse(&employees[i]))
	}
	return resp, nil
}

func (s *employeeService) Get(ctx context.Context, restaurantID, employeeID int64) (*dto.EmployeeResponse, error) {
	e, err := s.employees.FindByID(ctx, restaurantID, employeeID)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

func (s *employeeService) Create(ctx context.Context, restaurantID int64, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e := &model.Employee{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	}
	err := runTx(ctx, s.employees.DB(), func(tx *gorm.DB) error {
		return s.employees.CreateTx(ctx, tx, restaurantID, e)
	})
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

func (s *employeeService) Update(ctx context.Context, restaurantID, employeeID int64, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := s.employees.FindByID(ctx, restaurantID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		e.Name = req.Name
	}
	if req.Email != "" {
		e.Email = req.Email
	}
	if req.Phone != "" {
		e.Phone = req.Phone
	}
	if req.Role != "" {
		e.Role = req.Role
	}

	if err := s.employees.Update(ctx, restaurantID, e); err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

func (s *employeeService) Delete(ctx context.Context, restaurantID, employeeID int64) error {
	return s.employees.Delete(ctx, restaurantID, employeeID)
}

func (s *employeeService) MarkAttendance(ctx context.Context, restaurantID int64, req dto.MarkAttendanceRequest) (int, error) {
	if len(req.AttendanceData) == 0 {
		return 0, inputErr("attendance data must not be empty")
	}

	day, err := time.Parse("2006-01-02", req.AttendanceData[0].Date)
	if err != nil {
		return 0, inputErr("date must be YYYY-MM-DD")
	}
	for i := range req.AttendanceData {
		if req.AttendanceData[i].Date != req.AttendanceData[0].Date {
			return 0, inputErr("all attendance entries must be for the same date")
		}
	}

	err = runTx(ctx, s.employees.DB(), func(tx *gorm.DB) error {
		if err := s.employees.EnsureAttendanceTableTx(ctx, tx, restaurantID); err != nil {
			return err
		}
		if err := s.employees.DeleteAttendanceDayTx(ctx, tx, restaurantID, day); err != nil {
			return err
		}
		for i := range req.AttendanceData {
			entry := &req.AttendanceData[i]
			rec := &model.AttendanceRecord{
				EmployeeID:   entry.EmployeeID,
				EmployeeName: entry.EmployeeName,
				EmployeeRole: entry.EmployeeRole,
				Date:         day,
				Status:       entry.Status,
				Remarks:      entry.Remarks,
			}
			if err := s.employees.InsertAttendanceTx(ctx, tx, restaurantID, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(req.AttendanceData), nil
}

func (s *employeeService) AttendanceByDate(ctx context.Context, restaurantID int64, date string) ([]dto.AttendanceRecordResponse, error) {
	day := time.Now()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, inputErr("date must be YYYY-MM-DD")
		}
		day = parsed
	}

	records, err := s.employees.ListAttendanceByDate(ctx, restaurantID, day)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		r := &records[i]
		resp = append(resp, dto.AttendanceRecordResponse{
			ID:           r.ID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			EmployeeRole: r.EmployeeRole,
			Date:         r.Date.Format("2006-01-02"),
			Status:       r.Status,
			Remarks:      r.Remarks,
		})
	}
	return resp, nil
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Phone: e.Phone,
		Role:  e.Role,
	}
}
