package model

import "time"

// EventTypes are the occasions offered by the planning form.
var EventTypes = []string{
	"Wedding",
	"Birthday Party",
	"Corporate Event",
	"Religious Ceremony",
	"Anniversary",
	"Baby Shower",
}

// PlanSections are the headings every generated plan must contain, in order.
var PlanSections = []string{
	"Venue Suggestions",
	"Budget Breakdown",
	"Menu Suggestions",
	"Decoration Ideas",
	"Timeline of Events",
	"Additional Recommendations",
}

type EventPlanRequest struct {
	EventType   string  `json:"eventType" validate:"required,max=100"`
	Location    string  `json:"location" validate:"required,max=100"`
	Budget      float64 `json:"budget" validate:"required,min=10000,max=10000000"`
	GuestCount  int     `json:"guestCount" validate:"required,min=10,max=1000"`
	Preferences string  `json:"preferences" validate:"omitempty,max=2000"`
}

type PlanSection struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type EventPlan struct {
	Text        string        `json:"plan"`
	Sections    []PlanSection `json:"sections"`
	Model       string        `json:"model"`
	Attempts    int           `json:"attempts"`
	Cached      bool          `json:"cached"`
	GeneratedAt time.Time     `json:"generatedAt"`
}
