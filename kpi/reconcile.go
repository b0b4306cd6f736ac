package kpi

import "math"

// Reconcile derives the composite columns from the row's raw fields:
//
//   - BestAchieved prefers Achieved, falling back to RevenueReached.
//   - BestTarget prefers RevenueTarget, falling back to TargetOf.
//   - AchievementRate, when not stated directly, is computed as
//     round(100 * BestAchieved / BestTarget, 2); a zero BestTarget falls
//     through to the stated RevenuePercent, and absent that the rate
//     stays absent.
//
// The derivation is a pure function of the seven raw fields, so calling
// Reconcile again on an already-reconciled row changes nothing.
func (r *Row) Reconcile() {
	r.BestAchieved = r.Achieved
	if !r.BestAchieved.Valid {
		r.BestAchieved = r.RevenueReached
	}

	r.BestTarget = r.RevenueTarget
	if !r.BestTarget.Valid {
		r.BestTarget = r.TargetOf
	}

	if r.AchievementRate.Valid {
		return
	}
	if r.BestAchieved.Valid && r.BestTarget.Valid && r.BestTarget.Float64 != 0 {
		r.AchievementRate = Some(round2(r.BestAchieved.Float64 / r.BestTarget.Float64 * 100))
		return
	}
	if r.RevenuePercent.Valid {
		r.AchievementRate = r.RevenuePercent
	}
}

// Reconcile runs the row-level derivation across the whole table. Each
// row is reconciled purely from its own fields; there is no cross-row
// state, so row order does not affect the result.
func (t *Table) Reconcile() {
	for i := range t.Rows {
		t.Rows[i].Reconcile()
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
