package dto

import (
	"isp-billing/internal/domain/auth"
	"isp-billing/internal/domain/dashboard"
	"time"
)

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Persistence string `json:"persistence"`
}

func NewUserResponse(u auth.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Persistence: string(u.Persistence)}
}

type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	Persistence string       `json:"persistence" enums:"local,session"`
	User        UserResponse `json:"user"`
}

func NewLoginResponse(s *auth.Session) LoginResponse {
	return LoginResponse{
		Token:       s.Token,
		ExpiresAt:   s.ExpiresAt,
		Persistence: string(s.Persistence),
		User:        NewUserResponse(s.User),
	}
}

type StatsResponse struct {
	TotalCustomers        int            `json:"totalCustomers"`
	CustomersByStatus     map[string]int `json:"customersByStatus"`
	MonthlyRevenue        string         `json:"monthlyRevenue"`
	MonthlyRevenueDisplay string         `json:"monthlyRevenueDisplay"`
	PendingInvoices       int            `json:"pendingInvoices"`
	CollectionRate        string         `json:"collectionRate"`
}

func NewStatsResponse(s *dashboard.Stats) StatsResponse {
	return StatsResponse{
		TotalCustomers:        s.TotalCustomers,
		CustomersByStatus:     s.CustomersByStatus,
		MonthlyRevenue:        s.MonthlyRevenue.StringFixed(2),
		MonthlyRevenueDisplay: s.MonthlyRevenueDisplay,
		PendingInvoices:       s.PendingInvoices,
		CollectionRate:        s.CollectionRate.StringFixed(0) + "%",
	}
}

type PaymentResponse struct {
	Customer string `json:"customer"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Display  string `json:"display"`
	Status   string `json:"status"`
}

func NewPaymentResponses(payments []dashboard.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = PaymentResponse{
			Customer: p.Customer,
			Date:     p.Date,
			Amount:   p.Amount.StringFixed(2),
			Display:  dashboard.FormatCurrency(p.Amount),
			Status:   p.Status,
		}
	}
	return out
}

type RevenueSeriesResponse struct {
	Labels []string `json:"labels"`
	Data   []string `json:"data"`
}

func NewRevenueSeriesResponse(series []dashboard.RevenuePoint) RevenueSeriesResponse {
	resp := RevenueSeriesResponse{Labels: make([]string, len(series)), Data: make([]string, len(series))}
	for i, p := range series {
		resp.Labels[i] = p.Month
		resp.Data[i] = p.Amount.StringFixed(2)
	}
	return resp
}
