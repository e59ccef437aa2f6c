package profiles

import "strings"

// Plan is a purchasable tier.
type Plan struct {
	ID      PlanID `json:"id"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Price   string `json:"price"`
}

var catalog = []Plan{
	{ID: PlanFree, Name: "Free", Credits: 10, Price: "$0"},
	{ID: PlanPro, Name: "Pro", Credits: 100, Price: "$19/month"},
	{ID: PlanEnterprise, Name: "Enterprise", Credits: 500, Price: "$49/month"},
}

// Catalog returns the plans in display order. The first entry is the signup plan.
func Catalog() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// LookupPlan finds a plan by ID, case-insensitively.
func LookupPlan(id string) (Plan, bool) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, p := range catalog {
		if string(p.ID) == key {
			return p, true
		}
	}
	return Plan{}, false
}
