package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/report"
	"github.com/UnknownOlympus/tally/internal/service"
	"github.com/UnknownOlympus/tally/internal/stats"
	"gopkg.in/telebot.v4"
)

func newRequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (b *Bot) formatter(ctx context.Context) formatter {
	return formatter{localizer: b.localizer, lang: b.language(ctx), currency: b.currency}
}

// replyError turns an error into a localized message. Unexpected errors are
// logged and shown as a generic failure so no partial figures are displayed.
func (b *Bot) replyError(ctx context.Context, tCtx telebot.Context, usageKey string, err error) error {
	var key string
	switch {
	case errors.Is(err, errUsage):
		key = usageKey
	case errors.Is(err, errUnknownPerson), errors.Is(err, service.ErrEmployeeNotFound):
		key = "error.employee_not_found"
	case errors.Is(err, errUnknownClient), errors.Is(err, service.ErrClientNotFound):
		key = "error.client_not_found"
	case errors.Is(err, errAmbiguousName):
		key = "error.ambiguous"
	case errors.Is(err, models.ErrInvalidDate):
		key = "error.invalid_date"
	case errors.Is(err, errInvalidMonth):
		key = "error.invalid_month"
	case errors.Is(err, errInvalidAmount):
		key = "error.invalid_amount"
	case errors.Is(err, errUnknownShift):
		key = "error.invalid_shift"
	case errors.Is(err, service.ErrValidation):
		key = "error.invalid_input"
	default:
		b.log.ErrorContext(ctx, "Request failed", "error", err)
		key = "error.internal"
	}
	return b.send(tCtx, "error", b.t(ctx, key))
}

// startHandler process command /start.
func (b *Bot) startHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	if sender := tCtx.Sender(); sender != nil {
		b.log.InfoContext(ctx, "User started the bot", "id", sender.ID, "username", sender.Username)
	}
	return b.send(tCtx, "text", b.t(ctx, "welcome"), buildMainMenu())
}

// cancelHandler drops a pending dialog.
func (b *Bot) cancelHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	b.stateManager.Clear(tCtx.Sender().ID)
	return b.send(tCtx, "text", b.t(ctx, "dialog.cancelled"), buildMainMenu())
}

func (b *Bot) employeesHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	employees, err := b.svc.ListEmployees(ctx)
	if err != nil {
		return b.replyError(ctx, tCtx, "", err)
	}
	return b.send(tCtx, "text", b.formatter(ctx).employees(employees))
}

func (b *Bot) clientsHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	clients, err := b.svc.ListClients(ctx)
	if err != nil {
		return b.replyError(ctx, tCtx, "", err)
	}
	return b.send(tCtx, "text", b.formatter(ctx).clients(clients))
}

// addEmployeeHandler starts the two step dialog: name, then daily rate.
func (b *Bot) addEmployeeHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	b.stateManager.Set(tCtx.Sender().ID, UserState{WaitingFor: stepEmployeeName})
	return b.send(tCtx, "text", b.t(ctx, "employee.ask_name"))
}

// addClientHandler starts the two step dialog: name, then location.
func (b *Bot) addClientHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	b.stateManager.Set(tCtx.Sender().ID, UserState{WaitingFor: stepClientName})
	return b.send(tCtx, "text", b.t(ctx, "client.ask_name"))
}

// routeTextHandler feeds free text into the pending dialog, if any.
func (b *Bot) routeTextHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	userID := tCtx.Sender().ID
	state, ok := b.stateManager.Get(userID)
	if !ok {
		return b.send(tCtx, "text", b.t(ctx, "error.unknown_command"))
	}

	text := strings.TrimSpace(tCtx.Text())
	switch state.WaitingFor {
	case stepEmployeeName:
		if text == "" {
			b.stateManager.Set(userID, state)
			return b.send(tCtx, "text", b.t(ctx, "employee.ask_name"))
		}
		b.stateManager.Set(userID, UserState{WaitingFor: stepEmployeeRate, Name: text})
		return b.send(tCtx, "text", b.tWithData(ctx, "employee.ask_rate", map[string]any{"name": text}))

	case stepEmployeeRate:
		rate, err := parseAmount(text)
		if err != nil {
			b.stateManager.Set(userID, state)
			return b.replyError(ctx, tCtx, "", err)
		}
		employee, err := b.svc.CreateEmployee(ctx, service.EmployeeInput{Name: state.Name, DailyRate: rate})
		if err != nil {
			return b.replyError(ctx, tCtx, "", err)
		}
		return b.send(tCtx, "text", b.tWithData(ctx, "employee.added", map[string]any{"name": employee.Name}))

	case stepClientName:
		if text == "" {
			b.stateManager.Set(userID, state)
			return b.send(tCtx, "text", b.t(ctx, "client.ask_name"))
		}
		b.stateManager.Set(userID, UserState{WaitingFor: stepClientLocation, Name: text})
		return b.send(tCtx, "text", b.tWithData(ctx, "client.ask_location", map[string]any{"name": text}))

	case stepClientLocation:
		location := text
		if location == "-" {
			location = ""
		}
		client, err := b.svc.CreateClient(ctx, service.ClientInput{Name: state.Name, Location: location})
		if err != nil {
			return b.replyError(ctx, tCtx, "", err)
		}
		return b.send(tCtx, "text", b.tWithData(ctx, "client.added", map[string]any{"name": client.Name}))
	}

	return b.send(tCtx, "text", b.t(ctx, "error.unknown_command"))
}

// deleteEmployeeHandler handles /delemployee <employee>.
func (b *Bot) deleteEmployeeHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) != 1 {
		return b.replyError(ctx, tCtx, "usage.delemployee", errUsage)
	}

	employee, err := b.resolveEmployee(ctx, args[0])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.delemployee", err)
	}
	if err = b.svc.DeleteEmployee(ctx, employee.ID); err != nil {
		return b.replyError(ctx, tCtx, "", err)
	}
	return b.send(tCtx, "text", b.tWithData(ctx, "employee.deleted", map[string]any{"name": employee.Name}))
}

// deleteClientHandler handles /delclient <client>.
func (b *Bot) deleteClientHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) != 1 {
		return b.replyError(ctx, tCtx, "usage.delclient", errUsage)
	}

	clients, err := b.svc.ListClients(ctx)
	if err != nil {
		return b.replyError(ctx, tCtx, "", err)
	}
	client, err := findClient(clients, args[0])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.delclient", err)
	}
	if err = b.svc.DeleteClient(ctx, client.ID); err != nil {
		return b.replyError(ctx, tCtx, "", err)
	}
	return b.send(tCtx, "text", b.tWithData(ctx, "client.deleted", map[string]any{"name": client.Name}))
}

// workHandler handles /work <employee> <date> <client[:m|e|d]>... [+advance].
func (b *Bot) workHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	input, err := b.parseWorkDay(ctx, splitArgs(tCtx.Message().Payload))
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.work", err)
	}
	return b.saveDay(ctx, tCtx, input)
}

// absentHandler handles /absent <employee> <date> [+advance].
func (b *Bot) absentHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) < 2 || len(args) > 3 {
		return b.replyError(ctx, tCtx, "usage.absent", errUsage)
	}

	input, err := b.dayInput(ctx, args[0], args[1])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.absent", err)
	}
	input.IsAbsence = true

	if len(args) == 3 {
		if !strings.HasPrefix(args[2], "+") {
			return b.replyError(ctx, tCtx, "usage.absent", errUsage)
		}
		if input.Advance, err = parseAmount(args[2]); err != nil {
			return b.replyError(ctx, tCtx, "usage.absent", err)
		}
	}

	return b.saveDay(ctx, tCtx, input)
}

// clearHandler handles /clear <employee> <date>.
func (b *Bot) clearHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) != 2 { //nolint:mnd // employee and date
		return b.replyError(ctx, tCtx, "usage.clear", errUsage)
	}

	input, err := b.dayInput(ctx, args[0], args[1])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.clear", err)
	}

	if err = b.svc.ClearDay(ctx, input.EmployeeID, input.Date); err != nil {
		return b.replyError(ctx, tCtx, "usage.clear", err)
	}
	return b.send(tCtx, "text", b.tWithData(ctx, "day.cleared", map[string]any{"date": input.Date}))
}

// advanceHandler handles /advance <employee> <amount>.
func (b *Bot) advanceHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) != 2 { //nolint:mnd // employee and amount
		return b.replyError(ctx, tCtx, "usage.advance", errUsage)
	}

	employee, err := b.resolveEmployee(ctx, args[0])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.advance", err)
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.advance", err)
	}

	employee, err = b.svc.RecordAdvance(ctx, employee.ID, amount)
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.advance", err)
	}

	f := b.formatter(ctx)
	return b.send(tCtx, "text", b.tWithData(ctx, "advance.recorded", map[string]any{
		"name":   employee.Name,
		"amount": stats.FormatCurrency(amount, f.currency),
		"total":  stats.FormatCurrency(employee.Advances, f.currency),
	}))
}

// statsHandler handles /stats <employee> [YYYY-MM].
func (b *Bot) statsHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) < 1 || len(args) > 2 {
		return b.replyError(ctx, tCtx, "usage.stats", errUsage)
	}

	employee, err := b.resolveEmployee(ctx, args[0])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.stats", err)
	}

	f := b.formatter(ctx)
	if len(args) == 1 {
		result, errStats := b.svc.EmployeeStats(ctx, employee.ID)
		if errStats != nil {
			return b.replyError(ctx, tCtx, "usage.stats", errStats)
		}
		return b.send(tCtx, "text", f.employeeStats(employee, result))
	}

	year, month, err := parseMonth(args[1])
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.stats", err)
	}
	result, err := b.svc.MonthlyStats(ctx, employee.ID, year, month)
	if err != nil {
		return b.replyError(ctx, tCtx, "usage.stats", err)
	}
	return b.send(tCtx, "text", f.monthlyStats(employee, args[1], result))
}

// reportHandler handles /report: fleet totals over the current month.
func (b *Bot) reportHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	fleet, err := b.svc.FleetReport(ctx)
	if err != nil {
		return b.replyError(ctx, tCtx, "", err)
	}
	return b.send(tCtx, "text", b.formatter(ctx).fleet(fleet))
}

// exportHandler handles /export [YYYY-MM] and sends the Excel workbook.
func (b *Bot) exportHandler(tCtx telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*requestTimeout)
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) > 1 {
		return b.replyError(ctx, tCtx, "usage.export", errUsage)
	}

	today := b.today()
	year, month := today.Year(), today.Month()
	if len(args) == 1 {
		var err error
		if year, month, err = parseMonth(args[0]); err != nil {
			return b.replyError(ctx, tCtx, "usage.export", err)
		}
	}

	buffer, err := b.svc.MonthlyExport(ctx, year, month)
	if err != nil {
		if errors.Is(err, report.ErrNoEmployees) {
			return b.send(tCtx, "text", b.t(ctx, "employees.empty"))
		}
		return b.replyError(ctx, tCtx, "usage.export", err)
	}

	b.log.InfoContext(ctx, "Sending monthly export", "year", year, "month", int(month), "size", buffer.Len())
	document := &telebot.Document{
		File:     telebot.FromReader(buffer),
		FileName: fmt.Sprintf("tally-%d-%02d.xlsx", year, month),
		Caption:  b.tWithData(ctx, "export.caption", map[string]any{"month": fmt.Sprintf("%d-%02d", year, month)}),
	}
	return b.send(tCtx, "document", document)
}

// themeHandler handles /theme <light|dark|system>.
func (b *Bot) themeHandler(tCtx telebot.Context) error {
	ctx, cancel := newRequestContext()
	defer cancel()

	args := splitArgs(tCtx.Message().Payload)
	if len(args) != 1 {
		return b.replyError(ctx, tCtx, "usage.theme", errUsage)
	}

	settings, err := b.svc.SetTheme(ctx, strings.ToLower(args[0]))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return b.replyError(ctx, tCtx, "usage.theme", errUsage)
		}
		return b.replyError(ctx, tCtx, "", err)
	}
	return b.send(tCtx, "text", b.tWithData(ctx, "theme.changed", map[string]any{"theme": settings.Theme}))
}

func (b *Bot) saveDay(ctx context.Context, tCtx telebot.Context, input service.WorkDayInput) error {
	_, stored, err := b.svc.SaveWorkDay(ctx, input)
	if err != nil {
		return b.replyError(ctx, tCtx, "", err)
	}

	key := "day.saved"
	switch {
	case !stored:
		key = "day.empty"
	case input.IsAbsence:
		key = "day.absent"
	}
	return b.send(tCtx, "text", b.tWithData(ctx, key, map[string]any{"date": input.Date}))
}

func (b *Bot) resolveEmployee(ctx context.Context, ref string) (models.Employee, error) {
	employees, err := b.svc.ListEmployees(ctx)
	if err != nil {
		return models.Employee{}, err
	}
	return findEmployee(employees, ref)
}

// dayInput resolves the employee and date shared by the day commands.
func (b *Bot) dayInput(ctx context.Context, employeeRef, day string) (service.WorkDayInput, error) {
	employee, err := b.resolveEmployee(ctx, employeeRef)
	if err != nil {
		return service.WorkDayInput{}, err
	}
	date, err := parseDay(day, b.today())
	if err != nil {
		return service.WorkDayInput{}, err
	}
	return service.WorkDayInput{EmployeeID: employee.ID, Date: date}, nil
}

func (b *Bot) parseWorkDay(ctx context.Context, args []string) (service.WorkDayInput, error) {
	if len(args) < 3 { //nolint:mnd // employee, date and one client at least
		return service.WorkDayInput{}, errUsage
	}

	input, err := b.dayInput(ctx, args[0], args[1])
	if err != nil {
		return service.WorkDayInput{}, err
	}

	clients, err := b.svc.ListClients(ctx)
	if err != nil {
		return service.WorkDayInput{}, err
	}

	for _, token := range args[2:] {
		if strings.HasPrefix(token, "+") {
			if input.Advance, err = parseAmount(token); err != nil {
				return service.WorkDayInput{}, err
			}
			continue
		}

		spec, errSpec := parseClientSpec(token)
		if errSpec != nil {
			return service.WorkDayInput{}, errSpec
		}
		client, errClient := findClient(clients, spec.Ref)
		if errClient != nil {
			return service.WorkDayInput{}, errClient
		}

		input.ClientIDs = append(input.ClientIDs, client.ID)
		if spec.Shift != nil {
			if input.Shifts == nil {
				input.Shifts = models.Shifts{}
			}
			input.Shifts[client.ID] = *spec.Shift
		}
	}

	if len(input.ClientIDs) == 0 {
		return service.WorkDayInput{}, errUsage
	}
	return input, nil
}
