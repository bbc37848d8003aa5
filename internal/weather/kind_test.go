package weather

import (
	"errors"
	"strings"
	"testing"
)

func TestParseKindExact(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
}

func TestParseKindSuggestsClosest(t *testing.T) {
	_, err := ParseKind("RainStromEvent")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if !strings.Contains(err.Error(), `did you mean "RainStormEvent"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}

	_, err = ParseKind("Tornado")
	if !errors.Is(err, ErrUnknownKind) || strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("expected plain unknown-kind error, got %v", err)
	}
}

func TestClosestKindMatchesLabels(t *testing.T) {
	cases := map[string]Kind{
		"storm":       RainStorm,
		"blizard":     Blizzard,
		"solar surge": SolarSurge,
		"acid showr":  AcidShower,
	}
	for in, want := range cases {
		got, ok := ClosestKind(in)
		if !ok || got != want {
			t.Fatalf("ClosestKind(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ClosestKind(""); ok {
		t.Fatalf("empty input should not match")
	}
}
