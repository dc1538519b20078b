package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
}

// Excel serials above this are past year 9999.
const maxExcelSerial = 2958465

func trimCell(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

// parseDate accepts Excel serial numbers and the layouts above.
// Blank input yields a nil date without error.
func parseDate(s string) (*time.Time, error) {
	s = trimCell(s)
	if s == "" {
		return nil, nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > maxExcelSerial {
			return nil, fmt.Errorf("date serial out of range: %q", s)
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, fmt.Errorf("convert excel date %q: %w", s, err)
		}
		return &t, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount reads a currency amount written either with a dot decimal
// separator ("1234.56") or the Brazilian style ("R$ 1.234,56"). Dots read as
// thousands separators when they split digits into groups of three and the
// amount carries the R$ prefix or more than one dot ("R$ 1.234", "1.234.567").
func parseAmount(s string) (float64, error) {
	s = trimCell(s)
	brl := strings.HasPrefix(s, "R$")
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	case hasDot && (brl || strings.Count(s, ".") > 1) && thousandsGrouped(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// thousandsGrouped reports whether s is digits split by dots into a leading
// group of one to three digits followed by groups of exactly three.
func thousandsGrouped(s string) bool {
	groups := strings.Split(strings.TrimPrefix(s, "-"), ".")
	for i, g := range groups {
		if g == "" || strings.Trim(g, "0123456789") != "" {
			return false
		}
		if i == 0 && len(g) > 3 || i > 0 && len(g) != 3 {
			return false
		}
	}
	return true
}
