// Package clock is the time/calendar authority (component A). It is the
// only consumer of real (wall-clock) time deltas in the simulation: every
// other system advances purely from the game-seconds delta the Clock
// hands it.
package clock

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/oakmere/holdfast/internal/config"
	"github.com/oakmere/holdfast/internal/simlog"
)

// Season is one of the four calendar seasons, in rollover order.
type Season uint8

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	default:
		return "unknown"
	}
}

func seasonFromString(name string) Season {
	switch name {
	case "summer":
		return Summer
	case "autumn", "fall":
		return Autumn
	case "winter":
		return Winter
	default:
		return Spring
	}
}

// DayNightState is the four-valued day/night label exposed to collaborators.
type DayNightState string

const (
	Dawn  DayNightState = "dawn"
	Day   DayNightState = "day"
	Dusk  DayNightState = "dusk"
	Night DayNightState = "night"
)

// maxRealDt caps a single step's wall-clock delta to avoid a spiral of
// death after a stall (debugger pause, slow frame, GC hiccup).
const maxRealDt = 100 * time.Millisecond

// Clock tracks real-time delta, scaled game time, and the calendar.
type Clock struct {
	paused bool
	scale  float64

	dayLengthSeconds float64
	seasonLengthDays int
	dayStartHour     float64
	dayEndHour       float64

	tick   uint64
	day    int
	hour   float64
	season Season

	log *simlog.Logger
}

// New constructs a Clock from configuration, defaulting every field the
// document omits.
func New(cfg *config.Config, log *simlog.Logger) *Clock {
	c := &Clock{
		paused:           false,
		scale:            1.0,
		dayLengthSeconds: 1200,
		seasonLengthDays: 28,
		dayStartHour:     6,
		dayEndHour:       20,
		day:              0,
		hour:             0,
		season:           Spring,
		log:              log,
	}
	if cfg != nil {
		c.dayLengthSeconds = cfg.GetFloat("simulation.day_length_seconds", c.dayLengthSeconds)
		c.seasonLengthDays = cfg.GetInt("simulation.season_length_days", c.seasonLengthDays)
		c.season = seasonFromString(cfg.GetString("simulation.starting_season", c.season.String()))
		c.dayStartHour = cfg.GetFloat("time.day_night.day_start_hour", c.dayStartHour)
		c.dayEndHour = cfg.GetFloat("time.day_night.day_end_hour", c.dayEndHour)
	}
	return c
}

// CurrentTick implements simlog.TickSource.
func (c *Clock) CurrentTick() uint64 { return c.tick }

// Day, Hour, CurrentSeason expose calendar state read-only.
func (c *Clock) Day() int             { return c.day }
func (c *Clock) Hour() float64        { return c.hour }
func (c *Clock) CurrentSeason() Season { return c.season }
func (c *Clock) Paused() bool         { return c.paused }
func (c *Clock) Scale() float64       { return c.scale }

// SetPaused toggles the paused flag; a paused clock drives game_dt to zero.
func (c *Clock) SetPaused(p bool) { c.paused = p }

// SetScale sets the time-scale multiplier applied to real_dt.
func (c *Clock) SetScale(scale float64) { c.scale = scale }

// Step advances the clock by realDt of wall-clock time, capped to
// maxRealDt, and returns the resulting game_dt in seconds.
func (c *Clock) Step(realDt time.Duration) float64 {
	c.tick++

	if realDt > maxRealDt {
		realDt = maxRealDt
	}

	gameDt := 0.0
	if !c.paused {
		gameDt = realDt.Seconds() * c.scale
	}
	if gameDt == 0 {
		return 0
	}

	hoursPassed := (gameDt / c.dayLengthSeconds) * 24.0
	c.hour += hoursPassed

	for c.hour >= 24.0 {
		c.hour -= 24.0
		c.day++
		if c.seasonLengthDays > 0 && c.day%c.seasonLengthDays == 0 {
			c.advanceSeason()
		}
	}

	return gameDt
}

func (c *Clock) advanceSeason() {
	c.season = (c.season + 1) % 4
	if c.log != nil {
		c.log.System("season change", "day", c.day, "season", c.season.String())
	}
}

// IsDaytime reports whether hour falls within the configured day window.
func (c *Clock) IsDaytime(hour float64) bool {
	return hour >= c.dayStartHour && hour < c.dayEndHour
}

// DayNightState returns the four-valued label for the given hour.
func (c *Clock) DayNightState(hour float64) DayNightState {
	switch {
	case hour >= 5 && hour < 7:
		return Dawn
	case hour >= 19 && hour < 21:
		return Dusk
	case c.IsDaytime(hour):
		return Day
	default:
		return Night
	}
}

// State returns the current day/night state at the clock's own hour.
func (c *Clock) State() DayNightState {
	return c.DayNightState(c.hour)
}

// String renders a human-readable calendar line for logs and CLI status,
// using strftime-style formatting over a synthetic reference time whose
// fields mirror the in-game calendar.
func (c *Clock) String() string {
	hh := int(c.hour)
	mm := int((c.hour - float64(hh)) * 60)
	ref := time.Date(2000, time.January, 1+c.day%28, hh, mm, 0, 0, time.UTC)
	formatted := strftime.Format("%H:%M", ref)
	return fmt.Sprintf("Day %d (%s) %s %s", c.day, c.season, formatted, c.State())
}
