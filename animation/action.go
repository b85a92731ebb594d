// Package animation drives a character's action state machine: looping
// locomotion, queued one-shot actions and mid-clip release timing
package animation

// Action is one authored animation of the character rig
type Action int

const (
	Idle Action = iota
	IdleLook
	Walk
	Run
	Throw
	Punch
	Cheer
)

var actionNames = [...]string{"idle", "idle_look", "walk", "run", "throw", "punch", "cheer"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Clip is the playable window of an action as fractions of the authored clip
// Release is the mid-clip release point; zero means none
type Clip struct {
	Loop    bool
	Start   float64
	End     float64
	Release float64
}

// Attack-like actions are truncated to cut trailing motion
var clips = map[Action]Clip{
	Idle:     {Loop: true, Start: 0, End: 1},
	IdleLook: {Loop: true, Start: 0, End: 1},
	Walk:     {Loop: true, Start: 0, End: 1},
	Run:      {Loop: true, Start: 0, End: 1},
	Throw:    {Start: 0.1, End: 0.7, Release: 0.4},
	Punch:    {Start: 0.4, End: 0.7},
	Cheer:    {Start: 0, End: 1},
}

// ClipFor returns the clip window for a
func ClipFor(a Action) Clip {
	if c, ok := clips[a]; ok {
		return c
	}
	return Clip{Loop: true, End: 1}
}

// Looping reports whether a repeats until replaced
func Looping(a Action) bool {
	return ClipFor(a).Loop
}
