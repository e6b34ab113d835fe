package customer_test

import (
	"bytes"
	"isp-billing/internal/domain/customer"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExport(t *testing.T) {
	records := []customer.Customer{
		{
			ID:             "c1",
			Name:           "Rahim",
			Email:          "rahim@example.com",
			Phone:          "01711",
			Address:        "House 4, Road 2",
			Package:        "Basic 10 Mbps",
			MonthlyFee:     800,
			Status:         customer.StatusActive,
			ConnectionDate: time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{ID: "c2", Name: `Say "Hi"`, Status: customer.StatusSuspended},
	}

	var buf bytes.Buffer
	require.NoError(t, customer.WriteExport(&buf, records))

	want := customer.ExportHeader + "\n" +
		`"c1","Rahim","rahim@example.com","01711","House 4, Road 2","Basic 10 Mbps","800","active","2023-10-15"` + "\n" +
		`"c2","Say "Hi"","","","","","0","suspended",""` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, customer.WriteExport(&buf, nil))
	assert.Equal(t, "ID,Name,Email,Phone,Address,Package,Monthly Fee,Status,Connection Date\n", buf.String())
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "customers_2024-06-01.csv", customer.ExportFileName(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)))
}
