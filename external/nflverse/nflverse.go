package nflverse

import (
	"github.com/porchcrew/gridiron/internal/domain/playbyplay"
	"github.com/porchcrew/gridiron/internal/domain/stats"
)

// The provider encodes boolean play flags as 0/1 numerics.
func flag(v float64) bool { return v != 0 }

type playerStatItem struct {
	Week              int    `json:"week"`
	PlayerID          string `json:"player_id"`
	PlayerDisplayName string `json:"player_display_name"`
	RecentTeam        string `json:"recent_team"`
	Position          string `json:"position"`

	PassingYards            float64 `json:"passing_yards"`
	PassingTDs              float64 `json:"passing_tds"`
	Interceptions           float64 `json:"interceptions"`
	Passing2PtConversions   float64 `json:"passing_2pt_conversions"`
	SackFumblesLost         float64 `json:"sack_fumbles_lost"`
	RushingYards            float64 `json:"rushing_yards"`
	RushingTDs              float64 `json:"rushing_tds"`
	RushingFumblesLost      float64 `json:"rushing_fumbles_lost"`
	Rushing2PtConversions   float64 `json:"rushing_2pt_conversions"`
	Receptions              float64 `json:"receptions"`
	ReceivingYards          float64 `json:"receiving_yards"`
	ReceivingTDs            float64 `json:"receiving_tds"`
	ReceivingFumblesLost    float64 `json:"receiving_fumbles_lost"`
	Receiving2PtConversions float64 `json:"receiving_2pt_conversions"`
	SpecialTeamsTDs         float64 `json:"special_teams_tds"`
}

func (p playerStatItem) toOffenseGame(season int) stats.OffenseGame {
	return stats.OffenseGame{
		Season:     season,
		Week:       p.Week,
		PlayerID:   p.PlayerID,
		PlayerName: p.PlayerDisplayName,
		Team:       p.RecentTeam,
		Position:   p.Position,

		PassingYards:            p.PassingYards,
		PassingTDs:              int(p.PassingTDs),
		PassingInterceptions:    int(p.Interceptions),
		Passing2PtConversions:   int(p.Passing2PtConversions),
		RushingYards:            p.RushingYards,
		RushingTDs:              int(p.RushingTDs),
		Rushing2PtConversions:   int(p.Rushing2PtConversions),
		ReceivingYards:          p.ReceivingYards,
		Receptions:              int(p.Receptions),
		ReceivingTDs:            int(p.ReceivingTDs),
		Receiving2PtConversions: int(p.Receiving2PtConversions),
		SpecialTeamsTDs:         int(p.SpecialTeamsTDs),
		RushingFumblesLost:      int(p.RushingFumblesLost),
		ReceivingFumblesLost:    int(p.ReceivingFumblesLost),
		SackFumblesLost:         int(p.SackFumblesLost),
	}
}

type kickingStatItem struct {
	Week              int    `json:"week"`
	PlayerID          string `json:"player_id"`
	PlayerDisplayName string `json:"player_display_name"`
	Team              string `json:"team"`

	PATMade float64 `json:"pat_made"`

	FGMade0_19   float64 `json:"fg_made_0_19"`
	FGMade20_29  float64 `json:"fg_made_20_29"`
	FGMade30_39  float64 `json:"fg_made_30_39"`
	FGMade40_49  float64 `json:"fg_made_40_49"`
	FGMade50_59  float64 `json:"fg_made_50_59"`
	FGMade60Plus float64 `json:"fg_made_60_"`

	FGMissed0_19   float64 `json:"fg_missed_0_19"`
	FGMissed20_29  float64 `json:"fg_missed_20_29"`
	FGMissed30_39  float64 `json:"fg_missed_30_39"`
	FGMissed40_49  float64 `json:"fg_missed_40_49"`
	FGMissed50_59  float64 `json:"fg_missed_50_59"`
	FGMissed60Plus float64 `json:"fg_missed_60_"`
}

func (k kickingStatItem) toKickingGame(season int) stats.KickingGame {
	return stats.KickingGame{
		Season:     season,
		Week:       k.Week,
		PlayerID:   k.PlayerID,
		PlayerName: k.PlayerDisplayName,
		Team:       k.Team,

		PATMade:      int(k.PATMade),
		FGMade0_19:   int(k.FGMade0_19),
		FGMade20_29:  int(k.FGMade20_29),
		FGMade30_39:  int(k.FGMade30_39),
		FGMade40_49:  int(k.FGMade40_49),
		FGMade50_59:  int(k.FGMade50_59),
		FGMade60Plus: int(k.FGMade60Plus),

		FGMissed0_19:   int(k.FGMissed0_19),
		FGMissed20_29:  int(k.FGMissed20_29),
		FGMissed30_39:  int(k.FGMissed30_39),
		FGMissed40_49:  int(k.FGMissed40_49),
		FGMissed50_59:  int(k.FGMissed50_59),
		FGMissed60Plus: int(k.FGMissed60Plus),
	}
}

type playItem struct {
	Week     int    `json:"week"`
	GameID   string `json:"game_id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	PosTeam  string `json:"posteam"`
	DefTeam  string `json:"defteam"`

	PlayType        string  `json:"play_type"`
	Pass            float64 `json:"pass"`
	Rush            float64 `json:"rush"`
	Touchdown       float64 `json:"touchdown"`
	PassTouchdown   float64 `json:"pass_touchdown"`
	ReturnTouchdown float64 `json:"return_touchdown"`
	Interception    float64 `json:"interception"`
	Sack            float64 `json:"sack"`
	Fumble          float64 `json:"fumble"`
	FumbleLost      float64 `json:"fumble_lost"`
	Safety          float64 `json:"safety"`
	PuntBlocked     float64 `json:"punt_blocked"`
	KickoffAttempt  float64 `json:"kickoff_attempt"`
	PuntAttempt     float64 `json:"punt_attempt"`

	DefensiveTwoPointConv   float64 `json:"defensive_two_point_conv"`
	DefensiveExtraPointConv float64 `json:"defensive_extra_point_conv"`

	FieldGoalResult  string `json:"field_goal_result"`
	ExtraPointResult string `json:"extra_point_result"`

	PasserPlayerID   string `json:"passer_player_id"`
	RusherPlayerID   string `json:"rusher_player_id"`
	ReceiverPlayerID string `json:"receiver_player_id"`

	TDTeam              string `json:"td_team"`
	ReturnTeam          string `json:"return_team"`
	FumbleRecovery1Team string `json:"fumble_recovery_1_team"`
	FumbleRecovery2Team string `json:"fumble_recovery_2_team"`

	YardsGained *float64 `json:"yards_gained"`

	TotalHomeScore int `json:"total_home_score"`
	TotalAwayScore int `json:"total_away_score"`
}

func (p playItem) toPlayEvent(season int) playbyplay.PlayEvent {
	return playbyplay.PlayEvent{
		Season: season,
		Week:   p.Week,
		GameID: p.GameID,

		HomeTeam: p.HomeTeam,
		AwayTeam: p.AwayTeam,
		PosTeam:  p.PosTeam,
		DefTeam:  p.DefTeam,

		PlayType:        p.PlayType,
		Pass:            flag(p.Pass),
		Rush:            flag(p.Rush),
		Touchdown:       flag(p.Touchdown),
		PassTouchdown:   flag(p.PassTouchdown),
		ReturnTouchdown: flag(p.ReturnTouchdown),
		Interception:    flag(p.Interception),
		Sack:            flag(p.Sack),
		Fumble:          flag(p.Fumble),
		FumbleLost:      flag(p.FumbleLost),
		Safety:          flag(p.Safety),
		PuntBlocked:     flag(p.PuntBlocked),
		KickoffAttempt:  flag(p.KickoffAttempt),
		PuntAttempt:     flag(p.PuntAttempt),

		DefensiveTwoPointConv:   flag(p.DefensiveTwoPointConv),
		DefensiveExtraPointConv: flag(p.DefensiveExtraPointConv),

		FieldGoalResult:  p.FieldGoalResult,
		ExtraPointResult: p.ExtraPointResult,

		PasserID:   p.PasserPlayerID,
		RusherID:   p.RusherPlayerID,
		ReceiverID: p.ReceiverPlayerID,

		TDTeam:              p.TDTeam,
		ReturnTeam:          p.ReturnTeam,
		FumbleRecoveryTeam1: p.FumbleRecovery1Team,
		FumbleRecoveryTeam2: p.FumbleRecovery2Team,

		YardsGained: p.YardsGained,

		TotalHomeScore: p.TotalHomeScore,
		TotalAwayScore: p.TotalAwayScore,
	}
}
