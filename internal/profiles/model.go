package profiles

import "time"

// PlanID identifies a subscription tier.
type PlanID string

const (
	PlanFree       PlanID = "free"
	PlanPro        PlanID = "pro"
	PlanEnterprise PlanID = "enterprise"
)

// Profile holds a user's plan and credit counters. ID matches the user ID.
type Profile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Plan         PlanID    `json:"plan"`
	CreditsTotal int       `json:"creditsTotal"`
	CreditsUsed  int       `json:"creditsUsed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Remaining never goes negative.
func (p Profile) Remaining() int {
	if p.CreditsUsed >= p.CreditsTotal {
		return 0
	}
	return p.CreditsTotal - p.CreditsUsed
}

// Exhausted reports whether another humanization would exceed the plan.
func (p Profile) Exhausted() bool {
	return p.CreditsUsed >= p.CreditsTotal
}

// Usage is the credit view returned to clients.
type Usage struct {
	Plan             PlanID `json:"plan"`
	PlanName         string `json:"planName"`
	CreditsTotal     int    `json:"creditsTotal"`
	CreditsUsed      int    `json:"creditsUsed"`
	CreditsRemaining int    `json:"creditsRemaining"`
}

// UsageOf builds the client view of p.
func UsageOf(p Profile) Usage {
	name := string(p.Plan)
	if plan, ok := LookupPlan(string(p.Plan)); ok {
		name = plan.Name
	}
	return Usage{
		Plan:             p.Plan,
		PlanName:         name,
		CreditsTotal:     p.CreditsTotal,
		CreditsUsed:      p.CreditsUsed,
		CreditsRemaining: p.Remaining(),
	}
}

func newProfile(userID, username string, now time.Time) Profile {
	free := Catalog()[0]
	return Profile{
		ID:           userID,
		Username:     username,
		Plan:         free.ID,
		CreditsTotal: free.Credits,
		CreditsUsed:  0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
