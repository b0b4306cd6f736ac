package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileBestColumns(t *testing.T) {
	row := Row{
		Achieved:      Some(8000),
		RevenueTarget: Some(10000),
	}
	row.Reconcile()

	assert.Equal(t, Some(8000), row.BestAchieved)
	assert.Equal(t, Some(10000), row.BestTarget)
}

func TestReconcileBestColumnFallbacks(t *testing.T) {
	row := Row{
		RevenueReached: Some(4500),
		TargetOf:       Some(5000),
	}
	row.Reconcile()

	assert.Equal(t, Some(4500), row.BestAchieved)
	assert.Equal(t, Some(5000), row.BestTarget)
}

func TestReconcileInfersRate(t *testing.T) {
	row := Row{
		Achieved:      Some(8000),
		RevenueTarget: Some(10000),
	}
	row.Reconcile()

	assert.Equal(t, Some(80), row.AchievementRate)
}

func TestReconcileRateRounding(t *testing.T) {
	row := Row{
		Achieved:      Some(1000),
		RevenueTarget: Some(3000),
	}
	row.Reconcile()

	assert.Equal(t, Some(33.33), row.AchievementRate)
}

func TestReconcileKeepsStatedRate(t *testing.T) {
	row := Row{
		AchievementRate: Some(77.7),
		Achieved:        Some(8000),
		RevenueTarget:   Some(10000),
	}
	row.Reconcile()

	assert.Equal(t, Some(77.7), row.AchievementRate)
}

func TestReconcileZeroTargetGuard(t *testing.T) {
	row := Row{
		Achieved:      Some(500),
		RevenueTarget: Some(0),
	}
	row.Reconcile()

	assert.False(t, row.AchievementRate.Valid, "zero target must not produce a rate")
}

func TestReconcileZeroTargetFallsThroughToRevenuePercent(t *testing.T) {
	row := Row{
		Achieved:       Some(500),
		RevenueTarget:  Some(0),
		RevenuePercent: Some(64.5),
	}
	row.Reconcile()

	assert.Equal(t, Some(64.5), row.AchievementRate)
}

func TestReconcileRevenuePercentFallback(t *testing.T) {
	row := Row{RevenuePercent: Some(90)}
	row.Reconcile()

	assert.Equal(t, Some(90), row.AchievementRate)
	assert.False(t, row.BestAchieved.Valid)
	assert.False(t, row.BestTarget.Valid)
}

func TestReconcileAllAbsent(t *testing.T) {
	row := Row{Source: "empty.pptx"}
	row.Reconcile()

	assert.False(t, row.AchievementRate.Valid)
	assert.False(t, row.BestAchieved.Valid)
	assert.False(t, row.BestTarget.Valid)
}

func TestTableReconcileIdempotent(t *testing.T) {
	table := &Table{Rows: []Row{
		{Source: "a.pptx", Achieved: Some(8000), RevenueTarget: Some(10000)},
		{Source: "b.pptx", RevenueReached: Some(4500), TargetOf: Some(5000), RevenuePercent: Some(90)},
		{Source: "c.pptx", Achieved: Some(500), RevenueTarget: Some(0)},
	}}

	table.Reconcile()
	first := make([]Row, len(table.Rows))
	copy(first, table.Rows)

	table.Reconcile()
	assert.Equal(t, first, table.Rows)
}
