// Package service is the application layer between the bot and the record
// store. It validates input, applies the write policies and exposes the
// statistics and export views.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/UnknownOlympus/tally/internal/metrics"
	"github.com/UnknownOlympus/tally/internal/stats"
	"github.com/UnknownOlympus/tally/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrWorkRecordNotFound = errors.New("work record not found")
	ErrValidation         = errors.New("invalid input")
)

// Service holds the collaborators of every use case.
type Service struct {
	store    storage.Store
	engine   *stats.Engine
	log      *slog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
	newID    func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithMetrics enables storage and stats metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a Service on top of store.
func New(store storage.Store, log *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:    store,
		log:      log,
		validate: newValidator(),
		loc:      time.Local,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.engine = stats.NewEngine(store, svc.loc)

	return svc
}

// newValidator teaches the validator to compare decimals in numeric tags
// such as gt=0.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			return value.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return validate
}

func (s *Service) check(input any) error {
	if err := s.validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			fields := make([]string, 0, len(fieldErrors))
			for _, fieldErr := range fieldErrors {
				fields = append(fields, fieldErr.Field()+" "+fieldErr.Tag())
			}
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

// mapNotFound turns storage.ErrNotFound into the domain error target while
// keeping other failures intact.
func mapNotFound(err, target error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %w", target, err)
	}
	return err
}
