package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// characters that never appear in a legitimate company name and tend
// to show up in injection attempts
const invalidCompanyChars = `<>"\/`

func validateCompany(company string) (string, error) {
	company = strings.TrimSpace(company)
	if len(company) < 2 {
		return "", errors.New("company name must be at least 2 characters")
	}
	if strings.ContainsAny(company, invalidCompanyChars) {
		return "", fmt.Errorf("company name must not contain any of %s", invalidCompanyChars)
	}
	return company, nil
}

func validateDateRange(startStr, endStr string) (start, end time.Time, err error) {
	start, err = parseInputDate(startStr)
	if err != nil {
		return start, end, fmt.Errorf("start date: %w", err)
	}
	end, err = parseInputDate(endStr)
	if err != nil {
		return start, end, fmt.Errorf("end date: %w", err)
	}
	if !start.Before(end) {
		return start, end, errors.New("start date must be before end date")
	}
	if end.Sub(start) > 5*365*24*time.Hour {
		return start, end, errors.New("date range must not span more than 5 years")
	}
	return start, end, nil
}

func parseInputDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return t, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	if t.Year() < 2000 {
		return t, fmt.Errorf("year %d is before 2000", t.Year())
	}
	if t.Year() > time.Now().Year()+1 {
		return t, fmt.Errorf("year %d is too far in the future", t.Year())
	}
	return t, nil
}
