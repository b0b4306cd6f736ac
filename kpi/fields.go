// Package kpi extracts key performance indicators from free-form slide
// text: pattern matching, numeric normalization, and reconciliation of
// alternate phrasings into derived columns.
package kpi

// Field names a logical KPI extracted from deck text.
type Field string

// Canonical fields. Each corresponds to one pattern rule; the fallback
// Quality Score phrasing is internal and never appears in output maps.
const (
	FieldAchievementRate Field = "Achievement Rate"
	FieldRevenueTarget   Field = "Revenue Target"
	FieldAchieved        Field = "Achieved"
	FieldRevenueReached  Field = "Revenue Reached"
	FieldTargetOf        Field = "Target Of"
	FieldRevenuePercent  Field = "Revenue %"
	FieldQualityScore    Field = "Quality Score"

	fieldQualityScoreAlt Field = "Quality Score (alt)"
)

// Value is an optional float64. Absence is explicit (Valid=false) rather
// than a sentinel number, so that zero targets and blank export cells
// stay unambiguous. A Valid Value is always finite.
type Value struct {
	Float64 float64
	Valid   bool
}

// Some returns a present Value.
func Some(f float64) Value {
	return Value{Float64: f, Valid: true}
}

// Row holds the KPIs extracted from one document. The seven canonical
// fields are filled during extraction; BestAchieved, BestTarget, and a
// possibly recomputed AchievementRate are filled by Reconcile.
type Row struct {
	Source string // Originating file name, unique per table

	AchievementRate Value
	RevenueTarget   Value
	Achieved        Value
	RevenueReached  Value
	TargetOf        Value
	RevenuePercent  Value
	QualityScore    Value

	BestAchieved Value
	BestTarget   Value
}

// Table is an ordered collection of rows, one per processed document,
// in processing order.
type Table struct {
	Rows []Row
}

// FromText extracts a row from assembled deck text: the ordered pattern
// rules run against the blob, and each captured substring is coerced to
// its numeric form. Unmatched or unparsable fields stay absent.
func FromText(source, fullText string) Row {
	raw := Match(fullText)
	return Row{
		Source:          source,
		AchievementRate: ParsePercent(raw[FieldAchievementRate]),
		RevenueTarget:   ParseCurrency(raw[FieldRevenueTarget]),
		Achieved:        ParseCurrency(raw[FieldAchieved]),
		RevenueReached:  ParseCurrency(raw[FieldRevenueReached]),
		TargetOf:        ParseCurrency(raw[FieldTargetOf]),
		RevenuePercent:  ParsePercent(raw[FieldRevenuePercent]),
		QualityScore:    ParsePercent(raw[FieldQualityScore]),
	}
}
