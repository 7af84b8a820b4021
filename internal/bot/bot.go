// Package bot is the owner's Telegram interface to the tally service.
package bot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/tally/internal/i18n"
	"github.com/UnknownOlympus/tally/internal/metrics"
	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/service"
	"github.com/shopspring/decimal"
	"gopkg.in/telebot.v4"
)

const requestTimeout = 5 * time.Second

// Service is the part of the application layer the bot drives.
type Service interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, input service.EmployeeInput) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	RecordAdvance(ctx context.Context, employeeID string, amount decimal.Decimal) (models.Employee, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, input service.ClientInput) (models.Client, error)
	DeleteClient(ctx context.Context, id string) error
	SaveWorkDay(ctx context.Context, input service.WorkDayInput) (models.WorkRecord, bool, error)
	ClearDay(ctx context.Context, employeeID, date string) error
	EmployeeStats(ctx context.Context, employeeID string) (models.EmployeeStats, error)
	MonthlyStats(ctx context.Context, employeeID string, year int, month time.Month) (models.MonthlyStats, error)
	FleetReport(ctx context.Context) (service.FleetReport, error)
	MonthlyExport(ctx context.Context, year int, month time.Month) (*bytes.Buffer, error)
	Settings(ctx context.Context) (models.AppSettings, error)
	SetLanguage(ctx context.Context, language string) (models.AppSettings, error)
	SetTheme(ctx context.Context, theme string) (models.AppSettings, error)
}

// Options are the bot settings taken from the configuration.
type Options struct {
	Token         string
	PollerTimeout time.Duration
	OwnerID       int64 // 0 lets anyone in
	Currency      string
	Location      *time.Location
}

// Bot contains the bot API instance and other information.
type Bot struct {
	bot          *telebot.Bot
	log          *slog.Logger
	svc          Service
	metrics      *metrics.Metrics
	stateManager *StateManager
	localizer    *i18n.Localizer
	ownerID      int64
	currency     string
	loc          *time.Location
	now          func() time.Time
}

// NewBot creates a new bot connected to Telegram.
func NewBot(log *slog.Logger, svc Service, metrics *metrics.Metrics, opts Options) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  opts.Token,
		Poller: &telebot.LongPoller{Timeout: opts.PollerTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance, err := newBot(log, svc, metrics, opts)
	if err != nil {
		return nil, err
	}
	botInstance.bot = bot
	botInstance.registerRoutes()

	return botInstance, nil
}

// newBot builds everything but the Telegram connection.
func newBot(log *slog.Logger, svc Service, metrics *metrics.Metrics, opts Options) (*Bot, error) {
	localizer, err := i18n.NewLocalizer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize localizer: %w", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Bot{
		log:          log,
		svc:          svc,
		metrics:      metrics,
		stateManager: NewStateManager(),
		localizer:    localizer,
		ownerID:      opts.OwnerID,
		currency:     opts.Currency,
		loc:          loc,
		now:          time.Now,
	}, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	b.bot.Use(b.OwnerMiddleware, b.MetricsMiddleware)

	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/help", b.startHandler)
	b.bot.Handle("/employees", b.employeesHandler)
	b.bot.Handle("/addemployee", b.addEmployeeHandler)
	b.bot.Handle("/delemployee", b.deleteEmployeeHandler)
	b.bot.Handle("/clients", b.clientsHandler)
	b.bot.Handle("/addclient", b.addClientHandler)
	b.bot.Handle("/delclient", b.deleteClientHandler)
	b.bot.Handle("/work", b.workHandler)
	b.bot.Handle("/absent", b.absentHandler)
	b.bot.Handle("/clear", b.clearHandler)
	b.bot.Handle("/advance", b.advanceHandler)
	b.bot.Handle("/stats", b.statsHandler)
	b.bot.Handle("/report", b.reportHandler)
	b.bot.Handle("/export", b.exportHandler)
	b.bot.Handle("/language", b.languageHandler)
	b.bot.Handle("/theme", b.themeHandler)
	b.bot.Handle("/cancel", b.cancelHandler)
	b.bot.Handle(telebot.OnText, b.routeTextHandler)

	for _, lang := range i18n.Languages {
		b.bot.Handle("\flanguage_"+lang, b.languageChangeHandler)
	}
}

// language returns the interface language from the stored settings,
// English when they cannot be read.
func (b *Bot) language(ctx context.Context) string {
	settings, err := b.svc.Settings(ctx)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to get settings, using default language", "error", err)
		return models.LanguageEnglish
	}
	return settings.Language
}

// t is a shorthand method for getting translations.
func (b *Bot) t(ctx context.Context, key string) string {
	return b.localizer.Get(b.language(ctx), key)
}

// tWithData is a shorthand method for getting translations with placeholder data.
func (b *Bot) tWithData(ctx context.Context, key string, data map[string]any) string {
	return b.localizer.GetWithData(b.language(ctx), key, data)
}

func (b *Bot) today() time.Time {
	return b.now().In(b.loc)
}

// send counts and sends a message of the given type.
func (b *Bot) send(tCtx telebot.Context, kind string, what any, opts ...any) error {
	b.metrics.SentMessages.WithLabelValues(kind).Inc()
	return tCtx.Send(what, opts...)
}
