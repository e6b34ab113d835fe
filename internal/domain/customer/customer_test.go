package customer_test

import (
	"errors"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"active", "inactive", "suspended", " active "} {
		s, err := customer.ParseStatus(raw)
		assert.NoError(t, err, raw)
		assert.True(t, s.Valid())
	}

	_, err := customer.ParseStatus("deleted")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseMonthlyFee(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"1500", 1500},
		{" 1500 ", 1500},
		{"", 0},
		{"abc", 0},
		{"1500.75", 1500},
		{"12abc", 12},
		{"-200", 0},
		{"+300", 300},
		{"0", 0},
		{"9223372036854775807", 9223372036854775807},
		{"9223372036854775808", 0},
		{"99999999999999999999", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, customer.ParseMonthlyFee(tt.raw), "input %q", tt.raw)
	}
}

func validForm() customer.Form {
	return customer.Form{
		Name:           "  Rahim Uddin ",
		Email:          "rahim@example.com",
		Phone:          "01711000000",
		Address:        "Mirpur 10, Dhaka",
		Package:        "Standard 20 Mbps",
		MonthlyFee:     "1200",
		ConnectionDate: "2024-03-05",
		Status:         "suspended",
		Notes:          "router on 2nd floor",
	}
}

func TestFormPolicy_Normalize(t *testing.T) {
	policy := customer.FormPolicy{
		Packages: []string{"Basic 10 Mbps", "Standard 20 Mbps"},
		Now:      func() time.Time { return time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC) },
	}

	t.Run("Success", func(t *testing.T) {
		fields, err := policy.Normalize(validForm())

		require.NoError(t, err)
		assert.Equal(t, "Rahim Uddin", fields.Name)
		assert.Equal(t, int64(1200), fields.MonthlyFee)
		assert.Equal(t, customer.StatusSuspended, fields.Status)
		assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), fields.ConnectionDate)
		assert.Equal(t, "router on 2nd floor", fields.Notes)
	})

	t.Run("Defaults status and connection date", func(t *testing.T) {
		form := validForm()
		form.Status = ""
		form.ConnectionDate = ""
		form.MonthlyFee = "not a number"

		fields, err := policy.Normalize(form)

		require.NoError(t, err)
		assert.Equal(t, customer.StatusActive, fields.Status)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), fields.ConnectionDate)
		assert.Equal(t, int64(0), fields.MonthlyFee)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		cases := map[string]func(f *customer.Form){
			"name":    func(f *customer.Form) { f.Name = "  " },
			"email":   func(f *customer.Form) { f.Email = "" },
			"phone":   func(f *customer.Form) { f.Phone = "" },
			"package": func(f *customer.Form) { f.Package = "" },
		}
		for field, mutate := range cases {
			form := validForm()
			mutate(&form)

			_, err := policy.Normalize(form)

			require.ErrorIs(t, err, apperrors.ErrValidation, field)
			var vErr *apperrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, field, vErr.Field)
		}
	})

	t.Run("Malformed email", func(t *testing.T) {
		form := validForm()
		form.Email = "not-an-email"
		_, err := policy.Normalize(form)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Unknown package", func(t *testing.T) {
		form := validForm()
		form.Package = "Gigabit"
		_, err := policy.Normalize(form)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Any package without a configured list", func(t *testing.T) {
		form := validForm()
		form.Package = "Gigabit"
		_, err := customer.FormPolicy{}.Normalize(form)
		assert.NoError(t, err)
	})

	t.Run("Bad status and date", func(t *testing.T) {
		form := validForm()
		form.Status = "closed"
		_, err := policy.Normalize(form)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		form = validForm()
		form.ConnectionDate = "05/03/2024"
		_, err = policy.Normalize(form)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestCustomer_Fields(t *testing.T) {
	c := customer.Customer{
		ID:             "c-1",
		Name:           "Karim",
		Email:          "karim@example.com",
		Phone:          "017",
		Package:        "Basic 10 Mbps",
		MonthlyFee:     800,
		ConnectionDate: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		Status:         customer.StatusActive,
	}

	f := c.Fields()

	assert.Equal(t, c.Name, f.Name)
	assert.Equal(t, c.MonthlyFee, f.MonthlyFee)
	assert.Equal(t, c.ConnectionDate, f.ConnectionDate)
	assert.Equal(t, "2023-01-02", c.FormatConnectionDate())
	assert.Equal(t, "", customer.Customer{}.FormatConnectionDate())
}
