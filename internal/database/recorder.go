package database

import (
	"github.com/rs/zerolog/log"

	"github.com/web3guy0/tribot/internal/triangle"
)

// Recorder journals the best route of each non-empty scan cycle. It
// implements scanner.Reporter; write failures are logged and dropped.
type Recorder struct {
	db *Database
}

// NewRecorder wraps the journal as a scan reporter.
func NewRecorder(db *Database) *Recorder {
	return &Recorder{db: db}
}

// Report stores the top-ranked opportunity of the cycle, if any.
func (r *Recorder) Report(opps []triangle.Opportunity) {
	if len(opps) == 0 {
		return
	}

	best := opps[0]
	err := r.db.SaveOpportunity(&OpportunityLog{
		Route:     best.Route,
		Profit:    best.Profit,
		Pct:       best.Pct,
		Liquidity: best.Liquidity,
	})
	if err != nil {
		log.Error().Err(err).Str("route", best.Route).Msg("Failed to journal opportunity")
	}
}
