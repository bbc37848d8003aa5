package weather

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Kind int

const (
	RainStorm Kind = iota
	Blizzard
	SolarSurge
	AcidShower
)

var ErrUnknownKind = errors.New("unknown weather event kind")

var kindNames = [...]string{
	RainStorm:  "RainStormEvent",
	Blizzard:   "BlizzardEvent",
	SolarSurge: "SolarSurgeEvent",
	AcidShower: "AcidShowerEvent",
}

// String returns the identifier written to save files.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label is the short lowercase name used by commands and renderers.
func (k Kind) Label() string {
	switch k {
	case RainStorm:
		return "storm"
	case Blizzard:
		return "blizzard"
	case SolarSurge:
		return "solar surge"
	case AcidShower:
		return "acid shower"
	default:
		return "unknown"
	}
}

func Kinds() []Kind {
	return []Kind{RainStorm, Blizzard, SolarSurge, AcidShower}
}

// ParseKind resolves a persisted identifier. Matching is exact; the error for
// an unknown name carries the closest identifier when one is within reach.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	if suggestion, ok := ClosestKind(name); ok {
		return 0, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownKind, name, suggestion.String())
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// ClosestKind finds the kind whose identifier or label is nearest to name.
func ClosestKind(name string) (Kind, bool) {
	in := strings.ToLower(strings.TrimSpace(name))
	if in == "" {
		return 0, false
	}

	best := -1
	bestDist := 0
	for _, k := range Kinds() {
		for _, candidate := range []string{strings.ToLower(k.String()), k.Label()} {
			dist := levenshtein.ComputeDistance(in, candidate)
			if dist > suggestionLimit(len(candidate)) {
				continue
			}
			if best < 0 || dist < bestDist {
				best = int(k)
				bestDist = dist
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return Kind(best), true
}

func suggestionLimit(length int) int {
	switch {
	case length <= 5:
		return 1
	case length <= 10:
		return 2
	default:
		return 4
	}
}
