package services

import (
	"fmt"
	"strings"
)

// View selects which parts of a report are presented.
type View string

const (
	ViewAll     View = "all"
	ViewDetail  View = "detail"
	ViewSummary View = "summary"
)

// ParseView accepts "detail", "summary" or "all"; empty means all.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "", ViewAll:
		return ViewAll, nil
	case ViewDetail, ViewSummary:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view %q (want detail, summary or all)", s)
	}
}

func (v View) ShowDetail() bool { return v != ViewSummary }

func (v View) ShowSummary() bool { return v != ViewDetail }
