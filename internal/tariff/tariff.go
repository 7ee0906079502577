// Package tariff models energy tariffs: which unit rate and standing charges
// apply to a resource at a given local time, and the invariant that two
// tariffs of the same scope never apply at the same moment.
package tariff

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wattline/wattline/internal/core/resource"
)

// ErrOverlap is returned when a tariff would apply at the same moment as an
// existing tariff of the same scope, meter type and kind family.
var ErrOverlap = errors.New("tariff overlaps an existing tariff")

// Scope says what a tariff is attached to.
type Scope string

const (
	ScopeProvider Scope = "provider"
	ScopeResource Scope = "resource"
)

// Kind distinguishes ordinary tariffs from cash-back schemes.
type Kind string

const (
	KindNormal       Kind = "normal"
	KindCashbackTOU  Kind = "cashback_tou"
	KindCashbackFlat Kind = "cashback_flat"
)

// Cashback reports whether k is one of the cash-back kinds.
func (k Kind) Cashback() bool {
	return k == KindCashbackTOU || k == KindCashbackFlat
}

// Weekdays is a set of days, one bit per time.Weekday.
type Weekdays uint8

// AllWeekdays contains every day of the week.
const AllWeekdays Weekdays = 0x7f

// WeekdaysOf builds a set from individual days.
func WeekdaysOf(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

// Has reports whether d is in the set.
func (w Weekdays) Has(d time.Weekday) bool {
	return w&(1<<uint(d)) != 0
}

// Tariff is one rate card entry.
//
// ActiveFrom/ActiveTo are offsets from local midnight; ActiveTo before
// ActiveFrom wraps past midnight and equal offsets mean all day. StartDate and
// EndDate are civil dates (only year, month and day are read); EndDate is
// inclusive and nil means open-ended.
type Tariff struct {
	ID               string
	Scope            Scope
	ScopeID          string
	MeterType        resource.MeterType
	ActiveFrom       time.Duration
	ActiveTo         time.Duration
	StartDate        time.Time
	EndDate          *time.Time
	Weekdays         Weekdays
	UnitEnergyCost   decimal.Decimal
	DailyFixedCost   decimal.Decimal
	MonthlyFixedCost decimal.Decimal
	Kind             Kind
}

// Validate checks a tariff before it is stored.
func (t *Tariff) Validate() error {
	switch t.Scope {
	case ScopeProvider, ScopeResource:
	default:
		return fmt.Errorf("invalid tariff scope %q", t.Scope)
	}
	if t.ScopeID == "" {
		return errors.New("tariff scope id is required")
	}
	if t.MeterType == "" {
		return errors.New("tariff meter type is required")
	}
	switch t.Kind {
	case KindNormal, KindCashbackTOU, KindCashbackFlat:
	default:
		return fmt.Errorf("invalid tariff kind %q", t.Kind)
	}
	if t.ActiveFrom < 0 || t.ActiveFrom >= 24*time.Hour || t.ActiveTo < 0 || t.ActiveTo >= 24*time.Hour {
		return errors.New("tariff active time range must lie within a day")
	}
	if t.StartDate.IsZero() {
		return errors.New("tariff start date is required")
	}
	if t.EndDate != nil && civilDate(*t.EndDate).Before(civilDate(t.StartDate)) {
		return errors.New("tariff end date is before start date")
	}
	if t.Weekdays&AllWeekdays == 0 {
		return errors.New("tariff must be active on at least one weekday")
	}
	if t.UnitEnergyCost.IsNegative() || t.DailyFixedCost.IsNegative() || t.MonthlyFixedCost.IsNegative() {
		return errors.New("tariff costs must not be negative")
	}
	return nil
}

// ActiveAt reports whether the tariff's unit rate applies at instant at,
// evaluated in loc.
func (t *Tariff) ActiveAt(at time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	if !t.AppliesOn(at, loc) {
		return false
	}
	local := at.In(loc)
	offset := local.Sub(time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc))
	for _, iv := range t.dayIntervals() {
		if offset >= iv.from && offset < iv.to {
			return true
		}
	}
	return false
}

// AppliesOn reports whether the tariff is in force on the local date of at
// (date range and weekday), ignoring the time-of-day window.
func (t *Tariff) AppliesOn(at time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	local := at.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(civilDate(t.StartDate)) {
		return false
	}
	if t.EndDate != nil && day.After(civilDate(*t.EndDate)) {
		return false
	}
	return t.Weekdays.Has(local.Weekday())
}

// Overlaps reports whether t and other could both apply at the same moment
// to the same meter.
func (t *Tariff) Overlaps(other *Tariff) bool {
	if t.Scope != other.Scope || t.ScopeID != other.ScopeID || t.MeterType != other.MeterType {
		return false
	}
	if t.Kind.Cashback() != other.Kind.Cashback() {
		return false
	}
	if t.Weekdays&other.Weekdays == 0 {
		return false
	}
	if !datesOverlap(t, other) {
		return false
	}
	for _, a := range t.dayIntervals() {
		for _, b := range other.dayIntervals() {
			if a.from < b.to && b.from < a.to {
				return true
			}
		}
	}
	return false
}

// CheckOverlap returns ErrOverlap if candidate overlaps any of existing,
// skipping the entry with the candidate's own id.
func CheckOverlap(candidate *Tariff, existing []Tariff) error {
	for i := range existing {
		if existing[i].ID != "" && existing[i].ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(&existing[i]) {
			return fmt.Errorf("%w: conflicts with tariff %s", ErrOverlap, existing[i].ID)
		}
	}
	return nil
}

type interval struct {
	from, to time.Duration
}

func (t *Tariff) dayIntervals() []interval {
	const day = 24 * time.Hour
	switch {
	case t.ActiveFrom == t.ActiveTo:
		return []interval{{0, day}}
	case t.ActiveFrom < t.ActiveTo:
		return []interval{{t.ActiveFrom, t.ActiveTo}}
	default:
		return []interval{{t.ActiveFrom, day}, {0, t.ActiveTo}}
	}
}

func datesOverlap(a, b *Tariff) bool {
	if a.EndDate != nil && civilDate(*a.EndDate).Before(civilDate(b.StartDate)) {
		return false
	}
	if b.EndDate != nil && civilDate(*b.EndDate).Before(civilDate(a.StartDate)) {
		return false
	}
	return true
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
