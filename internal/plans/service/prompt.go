package service

import (
	"fmt"
	"strings"

	"utsav/pkg/locale"
	"utsav/pkg/model"
)

var sectionGuidance = map[string]string{
	"Venue Suggestions":          "Consider the guest count and suggest 2-3 venues with their pros and cons.",
	"Budget Breakdown":           "Break the budget down into venue, catering per person, decoration, entertainment and miscellaneous costs.",
	"Menu Suggestions":           "Suggest welcome drinks, appetizers, main course and desserts, respecting any dietary preferences.",
	"Decoration Ideas":           "Describe decoration themes and elements that suit Indian aesthetics.",
	"Timeline of Events":         "Give an hour-by-hour schedule for the day.",
	"Additional Recommendations": "List any other suggestions or considerations.",
}

// BuildPrompt asks for a plain-text plan with the required sections numbered
// in order.
func BuildPrompt(req *model.EventPlanRequest) string {
	preferences := strings.TrimSpace(req.Preferences)
	if preferences == "" {
		preferences = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed event plan for an Indian %s with the following details:\n", req.EventType)
	fmt.Fprintf(&b, "Location: %s\n", req.Location)
	fmt.Fprintf(&b, "Budget: %s INR\n", locale.FormatIndian(req.Budget))
	fmt.Fprintf(&b, "Number of guests: %d\n", req.GuestCount)
	fmt.Fprintf(&b, "Additional preferences: %s\n\n", preferences)

	b.WriteString("Provide a structured plan with exactly these sections, numbered and titled as shown:\n\n")
	for i, section := range model.PlanSections {
		fmt.Fprintf(&b, "%d. %s\n%s\n\n", i+1, section, sectionGuidance[section])
	}

	b.WriteString("Important: write plain text only, without markdown symbols or formatting characters. ")
	b.WriteString("Keep the section numbering and headings exactly as listed above.")
	return b.String()
}
