package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"utsav/pkg/model"
)

var (
	reBold         = regexp.MustCompile(`\*\*`)
	reAsterisk     = regexp.MustCompile(`\*`)
	reBacktick     = regexp.MustCompile("`")
	reHeading      = regexp.MustCompile(`#{1,6}\s`)
	reListHyphen   = regexp.MustCompile(`(?m)^\s*-\s`)
	reBlankLines   = regexp.MustCompile(`\n\s*\n`)
	reSectionTitle = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.+?)\s*:?\s*$`)
)

// CleanPlan strips markdown decoration from a completion and collapses runs
// of blank lines.
func CleanPlan(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, step := range []struct {
		re   *regexp.Regexp
		repl string
	}{
		{reBold, ""},
		{reAsterisk, ""},
		{reBacktick, ""},
		{reHeading, ""},
		{reListHyphen, ""},
		{reBlankLines, "\n\n"},
	} {
		text = step.re.ReplaceAllString(text, step.repl)
	}
	return strings.TrimSpace(text)
}

// ParseSections splits a cleaned plan at numbered headings that name a
// required section. Numbered lines inside a section stay in its content.
// Without numbered headings it splits at lines that are just a section name,
// and it returns nil when the plan has neither.
func ParseSections(text string) []model.PlanSection {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if sections := splitSections(lines, numberedTitle); len(sections) > 0 {
		return sections
	}
	return splitSections(lines, plainTitle)
}

// titleFunc reports whether line opens a section, with its number (0 when
// the heading is unnumbered) and title.
type titleFunc func(line string) (int, string, bool)

func numberedTitle(line string) (int, string, bool) {
	m := reSectionTitle.FindStringSubmatch(line)
	if m == nil || !isSectionTitle(m[2]) {
		return 0, "", false
	}
	n, _ := strconv.Atoi(m[1])
	return n, m[2], true
}

func plainTitle(line string) (int, string, bool) {
	title := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":"))
	for _, section := range model.PlanSections {
		if strings.EqualFold(title, section) {
			return 0, section, true
		}
	}
	return 0, "", false
}

func splitSections(lines []string, title titleFunc) []model.PlanSection {
	var (
		sections []model.PlanSection
		current  *model.PlanSection
		body     []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *current)
		body = nil
	}

	for _, line := range lines {
		if n, name, ok := title(line); ok {
			flush()
			if n == 0 {
				n = len(sections) + 1
			}
			current = &model.PlanSection{Number: n, Title: name}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

func isSectionTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, section := range model.PlanSections {
		if strings.Contains(lower, strings.ToLower(section)) {
			return true
		}
	}
	return false
}

// FormatDownload renders a plan as the downloadable text file. A plan with
// no recognisable sections is written as its cleaned text.
func FormatDownload(plan *model.EventPlan) string {
	sections := plan.Sections
	if len(sections) == 0 {
		return plan.Text + "\n"
	}
	parts := make([]string, 0, len(sections))
	for i, section := range sections {
		parts = append(parts, fmt.Sprintf("%d. %s\n%s\n", i+1, section.Title, section.Content))
	}
	return strings.Join(parts, "\n")
}

func DownloadFilename(now time.Time) string {
	return fmt.Sprintf("event-plan-%s.txt", now.UTC().Format(model.DateLayout))
}
