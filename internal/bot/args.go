package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
)

var (
	errUsage         = errors.New("wrong command usage")
	errUnknownShift  = errors.New("unknown shift, use m, e or d")
	errUnknownPerson = errors.New("no such employee")
	errUnknownClient = errors.New("no such client")
	errAmbiguousName = errors.New("name matches more than one record")
	errInvalidMonth  = errors.New("invalid month, expected YYYY-MM")
	errInvalidAmount = errors.New("invalid amount")
)

// splitArgs splits a command payload on spaces. Double quotes group words so
// multi-word names can be given: /stats "Ahmed Benali" 2024-06.
func splitArgs(payload string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)

	flush := func() {
		if started {
			args = append(args, current.String())
		}
		current.Reset()
		started = false
	}

	for _, r := range payload {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()

	return args
}

// parseDay accepts "today", "yesterday" or a YYYY-MM-DD date. today is the
// current time in the business location.
func parseDay(token string, today time.Time) (string, error) {
	switch strings.ToLower(token) {
	case "today":
		return models.FormatDate(today), nil
	case "yesterday":
		return models.FormatDate(today.AddDate(0, 0, -1)), nil
	}
	if err := models.ValidateDate(token); err != nil {
		return "", err
	}
	return token, nil
}

// parseMonth accepts a YYYY-MM month.
func parseMonth(token string) (int, time.Month, error) {
	parsed, err := time.Parse("2006-01", token)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errInvalidMonth, token)
	}
	return parsed.Year(), parsed.Month(), nil
}

// parseAmount parses a positive money amount. A leading + is allowed.
func parseAmount(token string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimPrefix(token, "+"))
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", errInvalidAmount, token)
	}
	return amount, nil
}

// clientSpec is one client token of /work: a client reference with an
// optional shift suffix.
type clientSpec struct {
	Ref   string
	Shift *models.WorkShift
}

// parseClientSpec parses "villa", "villa:m", "villa:e", "villa:me" or "villa:d".
func parseClientSpec(token string) (clientSpec, error) {
	ref, flags, hasFlags := strings.Cut(token, ":")
	if ref == "" {
		return clientSpec{}, fmt.Errorf("%w: %q", errUsage, token)
	}
	if !hasFlags {
		return clientSpec{Ref: ref}, nil
	}

	var shift models.WorkShift
	if flags == "" {
		return clientSpec{}, fmt.Errorf("%w: %q", errUnknownShift, token)
	}
	for _, flag := range strings.ToLower(flags) {
		switch flag {
		case 'm':
			shift.Morning = true
		case 'e':
			shift.Evening = true
		case 'd':
			shift.AllDay = true
		default:
			return clientSpec{}, fmt.Errorf("%w: %q", errUnknownShift, token)
		}
	}
	return clientSpec{Ref: ref, Shift: &shift}, nil
}

// findEmployee resolves a reference by id, then by case-insensitive name.
func findEmployee(employees []models.Employee, ref string) (models.Employee, error) {
	var matches []models.Employee
	for _, employee := range employees {
		if employee.ID == ref {
			return employee, nil
		}
		if strings.EqualFold(employee.Name, ref) {
			matches = append(matches, employee)
		}
	}

	switch len(matches) {
	case 0:
		return models.Employee{}, fmt.Errorf("%w: %q", errUnknownPerson, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Employee{}, fmt.Errorf("%w: %q", errAmbiguousName, ref)
	}
}

// findClient resolves a reference by id, then by case-insensitive name.
func findClient(clients []models.Client, ref string) (models.Client, error) {
	var matches []models.Client
	for _, client := range clients {
		if client.ID == ref {
			return client, nil
		}
		if strings.EqualFold(client.Name, ref) {
			matches = append(matches, client)
		}
	}

	switch len(matches) {
	case 0:
		return models.Client{}, fmt.Errorf("%w: %q", errUnknownClient, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Client{}, fmt.Errorf("%w: %q", errAmbiguousName, ref)
	}
}
