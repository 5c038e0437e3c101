package constant

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalDaysForPlan(t *testing.T) {
	tests := []struct {
		plan string
		want int
	}{
		{PlanSpark, 30},
		{PlanJourney, 60},
		{PlanTransform, 90},
		{PlanQuickStart, 30},
		{"", 30},
		{"premium", 30},
	}
	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalDaysForPlan(tt.plan))
		})
	}
}

func TestPlansCatalog(t *testing.T) {
	catalog := Plans()
	assert.Len(t, catalog, 4)
	assert.Equal(t, PlanQuickStart, catalog[0].Id)

	catalog[0].Name = "mutated"
	p, ok := FindPlan(PlanQuickStart)
	assert.True(t, ok)
	assert.Equal(t, "Quick Start", p.Name)

	spark, _ := FindPlan(PlanSpark)
	assert.True(t, spark.Highlight)
	assert.Equal(t, int64(2900), spark.PriceCents())

	_, ok = FindPlan("nope")
	assert.False(t, ok)
}

func TestCoachTemplates(t *testing.T) {
	greeting := fmt.Sprintf(CoachGreetingTemplate, "Ana", "Sam")
	assert.Equal(t, "Hey Ana! I'm your AI coach. I'm here to help you on your journey to show Sam who you're becoming. How are you feeling today?", greeting)
	assert.Contains(t, fmt.Sprintf(CoachContextTemplate, "Sam"), "reconnect with Sam.\n")
	assert.Len(t, CoachQuickPrompts, 4)
}
