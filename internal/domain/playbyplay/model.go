package playbyplay

// PlayEvent is one play from the provider's play-by-play feed, reduced to
// the fields the pipeline derives stats from. String fields are empty when
// the provider had no value; YardsGained is nil when yardage is unknown.
type PlayEvent struct {
	Season int
	Week   int
	GameID string

	HomeTeam string
	AwayTeam string
	PosTeam  string
	DefTeam  string

	PlayType        string
	Pass            bool
	Rush            bool
	Touchdown       bool
	PassTouchdown   bool
	ReturnTouchdown bool
	Interception    bool
	Sack            bool
	Fumble          bool
	FumbleLost      bool
	Safety          bool
	PuntBlocked     bool
	KickoffAttempt  bool
	PuntAttempt     bool

	DefensiveTwoPointConv   bool
	DefensiveExtraPointConv bool

	FieldGoalResult  string
	ExtraPointResult string

	PasserID   string
	RusherID   string
	ReceiverID string

	TDTeam              string
	ReturnTeam          string
	FumbleRecoveryTeam1 string
	FumbleRecoveryTeam2 string

	YardsGained *float64

	TotalHomeScore int
	TotalAwayScore int
}

func (e PlayEvent) yards() (float64, bool) {
	if e.YardsGained == nil {
		return 0, false
	}
	return *e.YardsGained, true
}

func (e PlayEvent) blockedKick() bool {
	return e.PuntBlocked || e.FieldGoalResult == "blocked" || e.ExtraPointResult == "blocked"
}
