package customer

import (
	"bufio"
	"io"
	"strconv"
	"time"
)

const ExportHeader = "ID,Name,Email,Phone,Address,Package,Monthly Fee,Status,Connection Date"

// WriteExport writes records as comma-separated rows with every field wrapped
// in double quotes. Quotes inside a field are written as-is.
func WriteExport(w io.Writer, records []Customer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(ExportHeader)
	bw.WriteByte('\n')

	for _, c := range records {
		fields := [...]string{
			c.ID,
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			c.Package,
			strconv.FormatInt(c.MonthlyFee, 10),
			string(c.Status),
			c.FormatConnectionDate(),
		}
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(f)
			bw.WriteByte('"')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func ExportFileName(now time.Time) string {
	return "customers_" + now.Format(dateLayout) + ".csv"
}
