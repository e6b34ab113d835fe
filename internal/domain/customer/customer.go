package customer

import (
	"fmt"
	"isp-billing/internal/pkg/apperrors"
	"math"
	"net/mail"
	"slices"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// ParseStatus accepts exactly one of the three defined values.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q, expected active, inactive or suspended", raw))
	}
	return s, nil
}

type Customer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	NationalID     string    `json:"nid,omitempty"`
	Address        string    `json:"address,omitempty"`
	Package        string    `json:"package"`
	MonthlyFee     int64     `json:"monthlyFee"`
	ConnectionDate time.Time `json:"connectionDate"`
	Status         Status    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Fields is the complete editable field set. Updates always resubmit all of it.
type Fields struct {
	Name           string
	Email          string
	Phone          string
	NationalID     string
	Address        string
	Package        string
	MonthlyFee     int64
	ConnectionDate time.Time
	Status         Status
	Notes          string
}

func (c Customer) Fields() Fields {
	return Fields{
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		NationalID:     c.NationalID,
		Address:        c.Address,
		Package:        c.Package,
		MonthlyFee:     c.MonthlyFee,
		ConnectionDate: c.ConnectionDate,
		Status:         c.Status,
		Notes:          c.Notes,
	}
}

// FormatConnectionDate renders the connection date as a calendar date.
func (c Customer) FormatConnectionDate() string {
	if c.ConnectionDate.IsZero() {
		return ""
	}
	return c.ConnectionDate.Format(dateLayout)
}

// Form carries the raw values an administrator typed into the customer form.
type Form struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	NationalID     string `json:"nid"`
	Address        string `json:"address"`
	Package        string `json:"package"`
	MonthlyFee     string `json:"monthlyFee"`
	ConnectionDate string `json:"connectionDate"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
}

// FormPolicy turns a Form into Fields. Packages is the allowed tier list; an
// empty list accepts any non-empty tier.
type FormPolicy struct {
	Packages []string
	Now      func() time.Time
}

func (p FormPolicy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p FormPolicy) Normalize(f Form) (Fields, error) {
	fields := Fields{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		NationalID: strings.TrimSpace(f.NationalID),
		Address:    strings.TrimSpace(f.Address),
		Package:    strings.TrimSpace(f.Package),
		MonthlyFee: ParseMonthlyFee(f.MonthlyFee),
		Notes:      strings.TrimSpace(f.Notes),
	}

	if fields.Name == "" {
		return Fields{}, apperrors.NewValidationError("name", "name cannot be empty")
	}
	if fields.Email == "" {
		return Fields{}, apperrors.NewValidationError("email", "email cannot be empty")
	}
	if _, err := mail.ParseAddress(fields.Email); err != nil {
		return Fields{}, apperrors.NewValidationError("email", "email address is malformed")
	}
	if fields.Phone == "" {
		return Fields{}, apperrors.NewValidationError("phone", "phone cannot be empty")
	}
	if fields.Package == "" {
		return Fields{}, apperrors.NewValidationError("package", "package cannot be empty")
	}
	if len(p.Packages) > 0 && !slices.Contains(p.Packages, fields.Package) {
		return Fields{}, apperrors.NewValidationError("package", fmt.Sprintf("unknown package %q", fields.Package))
	}

	if strings.TrimSpace(f.Status) == "" {
		fields.Status = StatusActive
	} else {
		status, err := ParseStatus(f.Status)
		if err != nil {
			return Fields{}, err
		}
		fields.Status = status
	}

	date, err := p.parseConnectionDate(f.ConnectionDate)
	if err != nil {
		return Fields{}, err
	}
	fields.ConnectionDate = date

	return fields, nil
}

func (p FormPolicy) parseConnectionDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		y, m, d := p.now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("connectionDate", "connection date must be YYYY-MM-DD")
	}
	return date, nil
}

// ParseMonthlyFee reads the leading integer of raw and never fails: blank or
// unparseable input is 0, a fractional part is dropped and negatives clamp to 0.
// A leading integer too large for int64 also yields 0.
func ParseMonthlyFee(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	var fee int64
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		d := int64(r - '0')
		if fee > (math.MaxInt64-d)/10 {
			return 0
		}
		fee = fee*10 + d
		digits++
	}

	if digits == 0 || negative {
		return 0
	}
	return fee
}
