package config

import (
	"fmt"
	"strings"
	"time"
)

type TimeUnit string

const (
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
	UnitDays    TimeUnit = "days"
)

var unitAliases = map[string]TimeUnit{
	"minutes": UnitMinutes,
	"minute":  UnitMinutes,
	"min":     UnitMinutes,
	"м":       UnitMinutes,
	"минут":   UnitMinutes,
	"минуты":  UnitMinutes,
	"hours":   UnitHours,
	"hour":    UnitHours,
	"h":       UnitHours,
	"ч":       UnitHours,
	"часов":   UnitHours,
	"часа":    UnitHours,
	"days":    UnitDays,
	"day":     UnitDays,
	"d":       UnitDays,
	"д":       UnitDays,
	"дней":    UnitDays,
	"дня":     UnitDays,
}

// ParseTimeUnit resolves a unit name or alias. The boolean is false for
// unknown units.
func ParseTimeUnit(raw string) (TimeUnit, bool) {
	unit, ok := unitAliases[strings.ToLower(strings.TrimSpace(raw))]
	return unit, ok
}

func (u TimeUnit) Duration() time.Duration {
	switch u {
	case UnitMinutes:
		return time.Minute
	case UnitHours:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}

// InactivePeriod is the configured inactivity threshold as written by the
// operator.
type InactivePeriod struct {
	Value int
	Unit  TimeUnit
}

func DefaultInactivePeriod() InactivePeriod {
	return InactivePeriod{Value: 90, Unit: UnitDays}
}

func (p InactivePeriod) Duration() time.Duration {
	return time.Duration(p.Value) * p.Unit.Duration()
}

func (p InactivePeriod) Display() string {
	singular := strings.TrimSuffix(string(p.Unit), "s")
	if p.Value == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", p.Value, p.Unit)
}
