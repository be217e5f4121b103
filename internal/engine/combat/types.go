package combat

import "github.com/KirkDiggler/nyanko-battle/internal/entities"

// Side identifies one of the two rosters in a battle
type Side string

// Side constants
const (
	SidePlayer Side = "PLAYER"
	SideEnemy  Side = "ENEMY"
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// State is a battle controller state
type State string

// Controller states
const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateVictory    State = "victory"
	StateDefeat     State = "defeat"
	StateDraw       State = "draw"
)

// IsTerminal reports whether the battle is over in this state
func (s State) IsTerminal() bool {
	return s == StateVictory || s == StateDefeat || s == StateDraw
}

// Outcome is the terminal result of a battle from the player's point of view
type Outcome string

// Outcome constants
const (
	OutcomeVictory Outcome = "VICTORY"
	OutcomeDefeat  Outcome = "DEFEAT"
	OutcomeDraw    Outcome = "DRAW"
)

// ActionKind classifies an entry in the action log
type ActionKind string

// Action kinds
const (
	ActionAttack  ActionKind = "ATTACK"
	ActionSkill   ActionKind = "SKILL"
	ActionTick    ActionKind = "TICK"
	ActionCounter ActionKind = "COUNTER"
	ActionStunned ActionKind = "STUNNED"
	ActionFizzled ActionKind = "FIZZLED"
)

// StatusEffect is a timed effect carried by a combatant
type StatusEffect struct {
	Kind      entities.StatusKind `json:"kind"`
	Remaining int                 `json:"remaining"`
	Magnitude int                 `json:"magnitude"`
	Stacks    int                 `json:"stacks"`
	SourceID  string              `json:"source_id,omitempty"`
	SkillID   string              `json:"skill_id,omitempty"`
}

// Total is the magnitude scaled by the stack count
func (e *StatusEffect) Total() int {
	stacks := e.Stacks
	if stacks < 1 {
		stacks = 1
	}
	return e.Magnitude * stacks
}

// BattleAction is one resolved event in the action log
type BattleAction struct {
	Round    int        `json:"round"`
	Sequence int        `json:"sequence"`
	Kind     ActionKind `json:"kind"`
	ActorID  string     `json:"actor_id"`
	TargetID string     `json:"target_id,omitempty"`
	SkillID  string     `json:"skill_id,omitempty"`
	Damage   int        `json:"damage,omitempty"`
	Heal     int        `json:"heal,omitempty"`
	Critical bool       `json:"critical,omitempty"`
	Killed   bool       `json:"killed,omitempty"`
}

// Rewards are granted by the reward collaborator; the engine leaves them zero
type Rewards struct {
	Experience int `json:"experience"`
	Currency   int `json:"currency"`
}

// BattleResult is the terminal record of a battle
type BattleResult struct {
	Outcome     Outcome        `json:"outcome"`
	Victory     bool           `json:"victory"`
	Rounds      int            `json:"rounds"`
	DamageDealt int            `json:"damage_dealt"`
	DamageTaken int            `json:"damage_taken"`
	Actions     []BattleAction `json:"actions"`
	Rewards     Rewards        `json:"rewards"`
}

// Clone returns a copy that shares nothing with r
func (r *BattleResult) Clone() *BattleResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Actions = append([]BattleAction(nil), r.Actions...)
	return &out
}

// ActionChoice is what a selector decides for one actor. An empty SkillID
// is a basic attack. TargetID is required only for single-target selectors.
type ActionChoice struct {
	SkillID  string `json:"skill_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
}

// RecordedChoice is an accepted choice, kept for replay
type RecordedChoice struct {
	Round    int    `json:"round"`
	ActorID  string `json:"actor_id"`
	SkillID  string `json:"skill_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
}

// Choice returns the recorded action choice
func (r RecordedChoice) Choice() ActionChoice {
	return ActionChoice{SkillID: r.SkillID, TargetID: r.TargetID}
}

// RoundReport describes one completed round
type RoundReport struct {
	Round        int            `json:"round"`
	Actions      []BattleAction `json:"actions"`
	PlayersAlive int            `json:"players_alive"`
	EnemiesAlive int            `json:"enemies_alive"`
	State        State          `json:"state"`
}

// Terminal reports whether either roster was eliminated this round
func (r *RoundReport) Terminal() bool {
	return r.PlayersAlive == 0 || r.EnemiesAlive == 0
}
