package kpi

import "regexp"

// rule binds one field to a case-insensitive pattern with exactly one
// capture group holding the raw value.
type rule struct {
	field   Field
	pattern *regexp.Regexp
}

// rules is the canonical ordered rule set. Order is the tie-break when
// two rules could capture from the same text region: the first listed
// rule for a field wins. Rules are independent single-pass searches,
// not a combined grammar, so overlapping phrasings may legitimately
// feed more than one field.
var rules = []rule{
	{FieldAchievementRate, regexp.MustCompile(`(?i)Achievement\s*Rate[:\s]*([\d.]+%)`)},
	{FieldRevenueTarget, regexp.MustCompile(`(?i)Revenue\s*Target[:\s]*[₹Rs.\s]*([\d,]+)`)},
	{FieldAchieved, regexp.MustCompile(`(?i)Achieved[:\s]*[₹Rs.\s]*([\d,]+)`)},
	{FieldRevenueReached, regexp.MustCompile(`(?i)revenue\s*reached\s*[₹Rs.\s]*([\d,]+)`)},
	{FieldTargetOf, regexp.MustCompile(`(?i)against\s*a\s*target\s*of\s*[₹Rs.\s]*([\d,]+)`)},
	{FieldRevenuePercent, regexp.MustCompile(`(?i)against\s*a\s*target\s*of\s*[₹Rs.\s]*[^(]+\(([\d.]+%)\)`)},
	{FieldQualityScore, regexp.MustCompile(`(?i)Quality\s*score\s*was\s*([\d.]+%)`)},
	{fieldQualityScoreAlt, regexp.MustCompile(`(?i)Quality\s*Score[:\s]*([\d.]+%)`)},
}

// Match applies the rule set to the full text blob and returns the raw
// captured substring per field. At most one match is retained per field
// (first match in text order). The Quality Score fallback phrasing is
// promoted to FieldQualityScore when the primary phrasing did not
// match; the fallback's own key is never exposed.
func Match(fullText string) map[Field]string {
	raw := make(map[Field]string)
	for _, r := range rules {
		if _, ok := raw[r.field]; ok {
			continue
		}
		if m := r.pattern.FindStringSubmatch(fullText); m != nil {
			raw[r.field] = m[1]
		}
	}

	if _, ok := raw[FieldQualityScore]; !ok {
		if alt, ok := raw[fieldQualityScoreAlt]; ok {
			raw[FieldQualityScore] = alt
		}
	}
	delete(raw, fieldQualityScoreAlt)

	return raw
}
