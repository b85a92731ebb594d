package event

// EventType represents the type of game event
type EventType int

const (
	// === Input Event ===

	// EventMoveTo walks the player toward a ground point
	// Trigger: Pointer click | Consumer: PlayerSystem | Payload: *MoveToPayload
	EventMoveTo EventType = iota + 1

	// EventPickUp grabs the nearest idle barrel within reach
	// Trigger: Key | Consumer: PlayerSystem | Payload: nil
	EventPickUp

	// EventThrow throws the carried barrel at a ground point
	// Trigger: Key or click while carrying | Consumer: PlayerSystem | Payload: *ThrowPayload
	EventThrow

	// EventPunch plays the punch action
	// Trigger: Key | Consumer: PlayerSystem | Payload: nil
	EventPunch

	// EventPauseToggle freezes or resumes game time
	// Trigger: Key | Consumer: host loop | Payload: nil
	EventPauseToggle

	// === Gameplay Event ===

	// EventThrowReleased fires when the throw animation lets go of the barrel
	// Trigger: PlayerSystem | Consumer: AudioSystem | Payload: *ThrowReleasedPayload
	EventThrowReleased EventType = iota + 100

	// EventBarrelExploded fires once per barrel explosion
	// Trigger: BarrelSystem, ShockwaveSystem | Consumer: AudioSystem | Payload: *ExplosionPayload
	EventBarrelExploded

	// EventRatioExploded fires once per ratio explosion
	// Trigger: ShockwaveSystem | Consumer: AudioSystem, LevelSystem | Payload: *RatioExplodedPayload
	EventRatioExploded

	// EventScoreChanged fires after the score sink accepts points
	// Trigger: ScoreBoard | Consumer: AudioSystem | Payload: *ScorePayload
	EventScoreChanged

	// EventLevelStart fires once the level is built
	// Trigger: host | Consumer: ScoreBoard | Payload: *LevelStartPayload
	EventLevelStart

	// EventLevelComplete fires when no equivalent ratio remains
	// Trigger: LevelSystem | Consumer: PlayerSystem, AudioSystem | Payload: *LevelCompletePayload
	EventLevelComplete
)

var eventTypeNames = map[EventType]string{
	EventMoveTo:         "move_to",
	EventPickUp:         "pick_up",
	EventThrow:          "throw",
	EventPunch:          "punch",
	EventPauseToggle:    "pause_toggle",
	EventThrowReleased:  "throw_released",
	EventBarrelExploded: "barrel_exploded",
	EventRatioExploded:  "ratio_exploded",
	EventScoreChanged:   "score_changed",
	EventLevelStart:     "level_start",
	EventLevelComplete:  "level_complete",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is one queued event tagged with the frame it was pushed in
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
