package model

import "fmt"

// Mode is when a rule is offered to the agent.
type Mode int

const (
	// ModeAlwaysOn rules are always in context.
	ModeAlwaysOn Mode = iota
	// ModeManual rules are only used when the user references them.
	ModeManual
	// ModeIntelligent rules are picked by the model from their description.
	ModeIntelligent
	// ModeGlob rules apply to files matching Activation.Globs.
	ModeGlob
)

func (m Mode) String() string {
	switch m {
	case ModeAlwaysOn:
		return "always_on"
	case ModeManual:
		return "manual"
	case ModeIntelligent:
		return "intelligent"
	case ModeGlob:
		return "glob"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Activation is a Mode plus, for ModeGlob, its normalized pattern list.
type Activation struct {
	Mode  Mode   `json:"mode"`
	Globs string `json:"globs,omitempty"`
}

func AlwaysOn() Activation    { return Activation{Mode: ModeAlwaysOn} }
func Manual() Activation      { return Activation{Mode: ModeManual} }
func Intelligent() Activation { return Activation{Mode: ModeIntelligent} }

// Glob builds a glob activation. Callers normalize patterns first.
func Glob(globs string) Activation { return Activation{Mode: ModeGlob, Globs: globs} }

func (a Activation) String() string {
	if a.Mode == ModeGlob {
		return fmt.Sprintf("glob(%s)", a.Globs)
	}
	return a.Mode.String()
}

// MarshalText lets modes appear as strings in JSON output.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{ModeAlwaysOn, ModeManual, ModeIntelligent, ModeGlob} {
		if s == m.String() {
			return m, true
		}
	}
	return 0, false
}
