// Package schedule resolves a team's next game from a scanned schedule feed.
package schedule

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// LookaheadDays is the forward window scanned for the next game.
	LookaheadDays = 7

	// DefaultRestDays replaces rest gaps outside [0, maxRestDays].
	DefaultRestDays = 3

	maxRestDays = 7
)

// Entry is one scheduled game from any feed.
type Entry struct {
	Date          time.Time
	HomeTeamID    int
	VisitorTeamID int
}

// Source provides scheduled games for a calendar date.
type Source interface {
	GamesOn(ctx context.Context, date time.Time) ([]Entry, error)
}

// Game is a resolved upcoming game for one team.
type Game struct {
	Date       time.Time
	OpponentID int
	Home       bool
}

// Resolver scans a forward window of schedule days for a team's next game.
// A failing primary source degrades to the fallback feed for that day.
type Resolver struct {
	primary  Source
	fallback Source
	log      *logrus.Logger
	now      func() time.Time
}

// NewResolver creates a schedule resolver. fallback may be nil.
func NewResolver(primary, fallback Source, log *logrus.Logger) *Resolver {
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		log:      log,
		now:      time.Now,
	}
}

func (r *Resolver) gamesOn(ctx context.Context, date time.Time) []Entry {
	entries, err := r.primary.GamesOn(ctx, date)
	if err == nil {
		return entries
	}
	r.log.WithFields(logrus.Fields{
		"component": "schedule",
		"date":      date.Format("2006-01-02"),
		"error":     err.Error(),
	}).Debug("Primary schedule source failed")

	if r.fallback == nil {
		return nil
	}
	entries, err = r.fallback.GamesOn(ctx, date)
	if err != nil {
		return nil
	}
	return entries
}

// NextGame returns the first game within the lookahead window involving
// teamID. A nil result with nil error means no upcoming game was found,
// which is a valid terminal state.
func (r *Resolver) NextGame(ctx context.Context, teamID int) (*Game, error) {
	today := dateOnly(r.now())

	for i := 0; i < LookaheadDays; i++ {
		day := today.AddDate(0, 0, i)
		for _, entry := range r.gamesOn(ctx, day) {
			if dateOnly(entry.Date).Before(today) {
				continue
			}
			switch teamID {
			case entry.HomeTeamID:
				return &Game{Date: dateOnly(entry.Date), OpponentID: entry.VisitorTeamID, Home: true}, nil
			case entry.VisitorTeamID:
				return &Game{Date: dateOnly(entry.Date), OpponentID: entry.HomeTeamID, Home: false}, nil
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// IsBackToBack reports whether the team is scheduled the day before gameDate.
func (r *Resolver) IsBackToBack(ctx context.Context, teamID int, gameDate time.Time) bool {
	previous := dateOnly(gameDate).AddDate(0, 0, -1)
	for _, entry := range r.gamesOn(ctx, previous) {
		if entry.HomeTeamID == teamID || entry.VisitorTeamID == teamID {
			return true
		}
	}
	return false
}

// RestDays computes full days of rest between a player's last game and the
// upcoming one. Gaps outside [0, 7] collapse to the default of 3.
func RestDays(gameDate, lastPlayed time.Time) int {
	gap := int(dateOnly(gameDate).Sub(dateOnly(lastPlayed)).Hours() / 24)
	rest := gap - 1
	if rest < 0 || rest > maxRestDays {
		return DefaultRestDays
	}
	return rest
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
