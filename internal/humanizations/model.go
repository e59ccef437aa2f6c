package humanizations

import "time"

// Record is one completed humanization.
type Record struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	OriginalText  string    `json:"originalText"`
	HumanizedText string    `json:"humanizedText"`
	Strategy      string    `json:"strategy"`
	Readability   string    `json:"readability"`
	Purpose       string    `json:"purpose"`
	Strength      float64   `json:"strength"`
	CreatedAt     time.Time `json:"createdAt"`
}
