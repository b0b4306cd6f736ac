// Package export serializes a KPI table to delimited text and to an
// Office Open XML workbook. Absent values render as empty fields and
// blank cells, never as zero.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/chalamkotahemanth/slidekpi/kpi"
)

// Columns is the fixed output schema, in order.
var Columns = []string{
	"PPT File",
	"Achievement Rate (%)",
	"Revenue Target (₹)",
	"Achieved (₹)",
	"Revenue Reached (₹)",
	"Target Of (₹)",
	"Revenue % (%)",
	"Quality Score (%)",
	"Best Achieved (₹)",
	"Best Target (₹)",
}

// CSV writes the table as delimited text: one header row, then one
// record per row in table order.
func CSV(w io.Writer, t *kpi.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range t.Rows {
		if err := cw.Write(record(&t.Rows[i])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// record renders one row under the Columns schema.
func record(r *kpi.Row) []string {
	return []string{
		r.Source,
		formatValue(r.AchievementRate),
		formatValue(r.RevenueTarget),
		formatValue(r.Achieved),
		formatValue(r.RevenueReached),
		formatValue(r.TargetOf),
		formatValue(r.RevenuePercent),
		formatValue(r.QualityScore),
		formatValue(r.BestAchieved),
		formatValue(r.BestTarget),
	}
}

func formatValue(v kpi.Value) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

// Filename builds a timestamped export name so repeated exports in one
// session do not collide, e.g. "managers_kpi_20240131_093000.csv".
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s%s", prefix, now.Format("20060102_150405"), ext)
}
