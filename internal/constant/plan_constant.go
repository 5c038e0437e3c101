package constant

const (
	PlanQuickStart = "quick_start"
	PlanSpark      = "spark"
	PlanJourney    = "journey"
	PlanTransform  = "transform"

	DefaultProgramDays = 30
	DefaultCurrency    = "USD"
	// DefaultIDRPerUSD converts catalog prices into the rupiah amount charged through Snap.
	DefaultIDRPerUSD = 16000
)

type Plan struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Highlight   bool     `json:"highlight"`
	// TotalDays is 0 for one-time plans without a daily program.
	TotalDays int `json:"total_days"`
}

// PriceCents is the plan price in the smallest currency unit.
func (p Plan) PriceCents() int64 {
	return p.Price * 100
}

var plans = []Plan{
	{
		Id:          PlanQuickStart,
		Name:        "Quick Start",
		Price:       19,
		Type:        "One-time",
		Description: "Upload your journey or complete in one session",
		Features: []string{
			"Paste or upload your story",
			"3-page beautiful site",
			"AI chatbot that speaks as you",
			"Password protection",
			"Instant site generation",
		},
	},
	{
		Id:          PlanSpark,
		Name:        "Spark",
		Price:       29,
		Type:        "30 days",
		Description: "Daily guided journaling with accountability",
		Features: []string{
			"30 days of guided prompts",
			"AI coach check-ins",
			"Voice-to-text journaling",
			"Full 5-page site",
			"Analytics & read receipts",
			"Email reminders",
		},
		Highlight: true,
		TotalDays: 30,
	},
	{
		Id:          PlanJourney,
		Name:        "Journey",
		Price:       49,
		Type:        "60 days",
		Description: "Extended journey with deeper reflection",
		Features: []string{
			"Everything in Spark",
			"60 days of growth",
			"Weekly milestone reports",
			"Progress visualization",
			"AI image generation",
			"Song & video finder",
		},
		TotalDays: 60,
	},
	{
		Id:          PlanTransform,
		Name:        "Transform",
		Price:       79,
		Type:        "90 days",
		Description: "Complete transformation with all features",
		Features: []string{
			"Everything in Journey",
			"90 days of commitment",
			"Custom domain",
			"Lifetime access",
			"Two-way journaling",
			"Priority support",
		},
		TotalDays: 90,
	},
}

// Plans returns the catalog in display order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

func FindPlan(id string) (Plan, bool) {
	for _, p := range plans {
		if p.Id == id {
			return p, true
		}
	}
	return Plan{}, false
}

// TotalDaysForPlan maps a plan to its program length. Unknown plans and
// plans without a daily program fall back to 30 days.
func TotalDaysForPlan(planId string) int {
	if p, ok := FindPlan(planId); ok && p.TotalDays > 0 {
		return p.TotalDays
	}
	return DefaultProgramDays
}
