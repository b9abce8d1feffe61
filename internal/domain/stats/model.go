package stats

// PositionClass groups positions that share one scoring formula and one
// column schema.
type PositionClass string

const (
	ClassQB   PositionClass = "QB"
	ClassRB   PositionClass = "RB"
	ClassWRTE PositionClass = "WR/TE"
	ClassK    PositionClass = "K"
	ClassDST  PositionClass = "DST"
)

var AllClasses = map[PositionClass]struct{}{
	ClassQB:   {},
	ClassRB:   {},
	ClassWRTE: {},
	ClassK:    {},
	ClassDST:  {},
}

// ClassForPosition maps a provider position code onto its scoring class.
func ClassForPosition(position string) (PositionClass, bool) {
	switch position {
	case "QB":
		return ClassQB, true
	case "RB", "FB":
		return ClassRB, true
	case "WR", "TE":
		return ClassWRTE, true
	case "K":
		return ClassK, true
	case "DST":
		return ClassDST, true
	default:
		return "", false
	}
}

// OffenseGame is one player's offensive stat line for one week. Fields track
// the provider's weekly player-stats columns; a zero value is a valid
// played-but-produced-nothing line.
type OffenseGame struct {
	Season     int
	Week       int
	PlayerID   string
	PlayerName string
	Team       string
	Position   string

	PassingYards            float64
	PassingTDs              int
	PassingInterceptions    int
	Passing2PtConversions   int
	RushingYards            float64
	RushingTDs              int
	Rushing2PtConversions   int
	ReceivingYards          float64
	Receptions              int
	ReceivingTDs            int
	Receiving2PtConversions int
	SpecialTeamsTDs         int
	DefTDs                  int
	FumbleRecoveryTDs       int
	DefSafeties             int
	RushingFumblesLost      int
	ReceivingFumblesLost    int
	SackFumblesLost         int
}

// KickingGame is one kicker's stat line for one week, bucketed by attempt
// distance the way the provider reports field goals.
type KickingGame struct {
	Season     int
	Week       int
	PlayerID   string
	PlayerName string
	Team       string

	PATMade      int
	FGMade0_19   int
	FGMade20_29  int
	FGMade30_39  int
	FGMade40_49  int
	FGMade50_59  int
	FGMade60Plus int

	FGMissed0_19   int
	FGMissed20_29  int
	FGMissed30_39  int
	FGMissed40_49  int
	FGMissed50_59  int
	FGMissed60Plus int
}

// DefenseGame is one team defensive/special-teams unit's line for one week.
type DefenseGame struct {
	Season int
	Week   int
	Team   string

	Sacks            float64
	Interceptions    int
	FumblesRecovered int
	BlockedKicks     int
	Safeties         int
	IntTDs           int
	FumbleReturnTDs  int
	KickReturnTDs    int
	PuntReturnTDs    int
	BlockedKickTDs   int
	TwoPointReturns  int
	OnePointSafeties int
	PointsAllowed    int
	YardsAllowed     float64
}

// BonusRow carries one player's long-touchdown bonus points for one week.
// Rows exist only where a qualifying play happened.
type BonusRow struct {
	Season   int
	Week     int
	PlayerID string
	Points   float64
}
