package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"isp-billing/internal/domain/customer"
	"strings"
	"time"
)

// LenientString accepts a JSON string, number or null. Form fields like the
// monthly fee arrive either way and are parsed leniently downstream.
type LenientString string

func (s *LenientString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = LenientString(str)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = LenientString(num.String())
	}
	return nil
}

type CustomerRequest struct {
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	NationalID     string        `json:"nid"`
	Address        string        `json:"address"`
	Package        string        `json:"package"`
	MonthlyFee     LenientString `json:"monthlyFee" swaggertype:"string"`
	ConnectionDate string        `json:"connectionDate"`
	Status         string        `json:"status"`
	Notes          string        `json:"notes"`
}

func (r CustomerRequest) ToForm() customer.Form {
	return customer.Form{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		NationalID:     r.NationalID,
		Address:        r.Address,
		Package:        r.Package,
		MonthlyFee:     string(r.MonthlyFee),
		ConnectionDate: r.ConnectionDate,
		Status:         r.Status,
		Notes:          r.Notes,
	}
}

type FilterRequest struct {
	Search  string `json:"search"`
	Status  string `json:"status"`
	Package string `json:"package"`
}

// ToFilter rejects unknown statuses; an empty status means no status filter.
func (r FilterRequest) ToFilter() (customer.Filter, error) {
	f := customer.Filter{
		Search:  strings.TrimSpace(r.Search),
		Package: strings.TrimSpace(r.Package),
	}
	if strings.TrimSpace(r.Status) != "" {
		status, err := customer.ParseStatus(r.Status)
		if err != nil {
			return customer.Filter{}, err
		}
		f.Status = status
	}
	return f, nil
}

type PageRequest struct {
	Page int `json:"page"`
}

func (r *PageRequest) Validate() error {
	if r.Page < 1 {
		return fmt.Errorf("page must be a positive number")
	}
	return nil
}

type CustomerResponse struct {
	CustomerID     string    `json:"customerId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	NationalID     string    `json:"nid,omitempty"`
	Address        string    `json:"address,omitempty"`
	Package        string    `json:"package"`
	MonthlyFee     int64     `json:"monthlyFee"`
	ConnectionDate string    `json:"connectionDate"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewCustomerResponse(cust customer.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:     cust.ID,
		Name:           cust.Name,
		Email:          cust.Email,
		Phone:          cust.Phone,
		NationalID:     cust.NationalID,
		Address:        cust.Address,
		Package:        cust.Package,
		MonthlyFee:     cust.MonthlyFee,
		ConnectionDate: cust.FormatConnectionDate(),
		Status:         string(cust.Status),
		Notes:          cust.Notes,
		CreatedAt:      cust.CreatedAt,
		UpdatedAt:      cust.UpdatedAt,
	}
}

type FilterResponse struct {
	Search  string `json:"search"`
	Status  string `json:"status"`
	Package string `json:"package"`
}

// CustomerListResponse is one rendered page of the customer list.
type CustomerListResponse struct {
	State     string             `json:"state" enums:"page,empty,error"`
	Customers []CustomerResponse `json:"customers"`
	Page      int                `json:"page"`
	PageCount int                `json:"pageCount"`
	PageSize  int                `json:"pageSize"`
	HasNext   bool               `json:"hasNext"`
	HasPrev   bool               `json:"hasPrev"`
	Total     int                `json:"total"`
	Filter    FilterResponse     `json:"filter"`
	Error     string             `json:"error,omitempty"`
}

// ListContext is controller state not carried by the rendered view.
type ListContext struct {
	Filter   customer.Filter
	PageSize int
	Total    int
}

func NewCustomerListResponse(view customer.View, lc ListContext, errMessage string) CustomerListResponse {
	customers := make([]CustomerResponse, 0, len(view.Records))
	for _, c := range view.Records {
		customers = append(customers, NewCustomerResponse(c))
	}

	resp := CustomerListResponse{
		State:     string(view.State),
		Customers: customers,
		Page:      view.Page,
		PageCount: view.PageCount,
		PageSize:  lc.PageSize,
		HasNext:   customer.HasNext(view.Page, view.PageCount),
		HasPrev:   customer.HasPrev(view.Page),
		Total:     lc.Total,
		Filter: FilterResponse{
			Search:  lc.Filter.Search,
			Status:  string(lc.Filter.Status),
			Package: lc.Filter.Package,
		},
	}
	if view.State == customer.ViewError {
		resp.HasNext, resp.HasPrev = false, false
		resp.Error = errMessage
	}
	return resp
}

type CustomerMutationResponse struct {
	CustomerID string               `json:"customerId"`
	View       CustomerListResponse `json:"view"`
}

type DeleteConfirmationResponse struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Confirmed  bool   `json:"confirmed"`
}
