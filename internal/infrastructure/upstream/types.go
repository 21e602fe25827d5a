package upstream

import (
	"encoding/json"
	"fmt"

	"github.com/you/hrmportal/domain"
)

// envelope is the uniform response wrapper of the HRM backend:
// {success, message?, data?}.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeData unmarshals the envelope payload into a wire type. A
// missing or undecodable payload is a decode error, not a zero value;
// the shape of every response is validated at this boundary.
func decodeData[T any](env *envelope) (*T, error) {
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data payload", domain.ErrUpstreamDecode)
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamDecode, err)
	}
	return &out, nil
}

// wireEmployee is the employee identity block as the backend sends it.
type wireEmployee struct {
	EmployeeID         string `json:"employeeId"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verificationStatus"`
	IsActive           *bool  `json:"isActive"`
}

func (w *wireEmployee) toLogin() (*domain.LoginEmployee, error) {
	if w.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employee without employeeId", domain.ErrUpstreamDecode)
	}
	role, err := domain.ParseRole(w.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: employee %s: %v", domain.ErrUpstreamDecode, w.EmployeeID, err)
	}
	return &domain.LoginEmployee{
		EmployeeID:         w.EmployeeID,
		Email:              w.Email,
		Name:               w.Name,
		Role:               role,
		VerificationStatus: domain.VerificationStatus(w.VerificationStatus),
	}, nil
}

func (w *wireEmployee) toDirectory() (*domain.Employee, error) {
	if w.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employee without employeeId", domain.ErrUpstreamDecode)
	}
	role, err := domain.ParseRole(w.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: employee %s: %v", domain.ErrUpstreamDecode, w.EmployeeID, err)
	}
	active := true
	if w.IsActive != nil {
		active = *w.IsActive
	}
	return &domain.Employee{
		EmployeeID:         w.EmployeeID,
		Name:               w.Name,
		Email:              w.Email,
		Role:               role,
		VerificationStatus: domain.VerificationStatus(w.VerificationStatus),
		IsActive:           active,
	}, nil
}

// wireLogin is the login exchange payload: {token, employee:{...}}.
type wireLogin struct {
	Token    string       `json:"token"`
	Employee wireEmployee `json:"employee"`
}

// wireProfile is the employee details payload. The backend names the
// phone field "contact".
type wireProfile struct {
	Name    string              `json:"name"`
	Email   string              `json:"email"`
	Contact string              `json:"contact"`
	Photo   *domain.UploadedDoc `json:"photo"`
	Aadhaar *domain.UploadedDoc `json:"aadhaar"`
	PAN     *domain.UploadedDoc `json:"pan"`
}

func (w *wireProfile) toDomain() *domain.EmployeeProfile {
	return &domain.EmployeeProfile{
		Name:    w.Name,
		Email:   w.Email,
		Phone:   w.Contact,
		Photo:   w.Photo,
		Aadhaar: w.Aadhaar,
		PAN:     w.PAN,
	}
}

// wireDetail is the admin-side full employee record.
type wireDetail struct {
	wireEmployee
	Profile *wireProfile `json:"profile"`
}

// wireLeave is one leave request as the backend sends it. The backend
// uses Mongo-style "_id" identifiers.
type wireLeave struct {
	ID           string  `json:"_id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	FromDate     string  `json:"fromDate"`
	ToDate       string  `json:"toDate"`
	Reason       string  `json:"reason"`
	Days         float64 `json:"days"`
	Status       string  `json:"status"`
}

func (w *wireLeave) toDomain() domain.LeaveRequest {
	return domain.LeaveRequest{
		ID:           w.ID,
		EmployeeID:   w.EmployeeID,
		EmployeeName: w.EmployeeName,
		FromDate:     w.FromDate,
		ToDate:       w.ToDate,
		Reason:       w.Reason,
		Days:         w.Days,
		Status:       domain.LeaveStatus(w.Status),
	}
}
