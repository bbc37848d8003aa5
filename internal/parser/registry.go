package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match scores. An alias scores just under its canonical name so the
// canonical wins a tie.
const (
	scoreExact  = 1.0
	scoreAlias  = 0.97
	scorePrefix = 0.9
	scoreFuzzy  = 0.72
	// Each edit costs this much off scoreFuzzy.
	fuzzyEditCost = 0.08
)

type matchHow int

const (
	matchExact matchHow = iota
	matchPrefix
	matchFuzzy
)

// phrase is one spelling of a command: its canonical name or an alias.
type phrase struct {
	verb   string
	text   string
	tokens []string
}

func (p phrase) isAlias() bool { return p.text != p.verb }

type commandMatch struct {
	Verb     string
	Consumed int
	Score    float64
	How      matchHow
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []phrase
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandDef)}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	for _, spelling := range append([]string{c.Canonical}, c.Aliases...) {
		text := normaliseInput(spelling)
		if text == "" {
			continue
		}
		r.phrases = append(r.phrases, phrase{verb: c.Canonical, text: text, tokens: tokenise(text)})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

// matchCommand scores every phrase against the leading tokens and returns
// the best match plus up to four runners-up for other verbs.
func (r *Registry) matchCommand(tokens []string) (commandMatch, []commandMatch) {
	if len(tokens) == 0 {
		return commandMatch{}, nil
	}
	line := strings.Join(tokens, " ")
	var found []commandMatch
	for _, p := range r.phrases {
		if m, ok := p.match(tokens, line); ok {
			found = append(found, m)
		}
	}
	if len(found) == 0 {
		return commandMatch{}, nil
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		switch {
		case a.Score != b.Score:
			return a.Score > b.Score
		case a.Consumed != b.Consumed:
			return a.Consumed > b.Consumed
		default:
			return a.Verb < b.Verb
		}
	})

	best := found[0]
	var others []commandMatch
	seen := map[string]bool{best.Verb: true}
	for _, m := range found[1:] {
		if seen[m.Verb] {
			continue
		}
		seen[m.Verb] = true
		others = append(others, m)
		if len(others) == 4 {
			break
		}
	}
	return best, others
}

// match tries, in order, an exact phrase, a prefix of a one-word phrase and
// an edit-distance match.
func (p phrase) match(tokens []string, line string) (commandMatch, bool) {
	if len(p.tokens) == 0 {
		return commandMatch{}, false
	}
	n := min(len(tokens), len(p.tokens))
	head := strings.Join(tokens[:n], " ")

	if n == len(p.tokens) && head == p.text {
		score := scoreExact
		if p.isAlias() {
			score = scoreAlias
		}
		return commandMatch{Verb: p.verb, Consumed: n, Score: score, How: matchExact}, true
	}

	if len(p.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(p.text, tokens[0]) {
		return commandMatch{Verb: p.verb, Consumed: 1, Score: scorePrefix, How: matchPrefix}, true
	}

	if len(head) < 3 {
		return commandMatch{}, false
	}
	dist := levenshtein.ComputeDistance(head, p.text)
	if dist > editLimit(len(p.text)) {
		return commandMatch{}, false
	}
	score := scoreFuzzy - fuzzyEditCost*float64(dist)
	if strings.Contains(line, p.text) {
		score += 0.04
	}
	if p.isAlias() {
		score += 0.03
	}
	return commandMatch{Verb: p.verb, Consumed: n, Score: score, How: matchFuzzy}, true
}

func editLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "help"},
		{Canonical: "status", Aliases: []string{"st", "weather", "look", "sky"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "status"},
		{Canonical: "events", Aliases: []string{"forecast", "list", "ls"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "events"},
		{Canonical: "hour", Aliases: []string{"wait", "next hour", "skip hour", "hours"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "hour", Counted: true},
		{Canonical: "day", Aliases: []string{"sleep", "next day", "skip day", "days"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "day", Counted: true},
		{Canonical: "add", Aliases: []string{"spawn", "new", "summon"}, MinArgs: 1, MaxArgs: 5, HandlerKey: "add"},
		{Canonical: "frame", Aliases: []string{"tick", "advance"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "frame"},
		{Canonical: "save", Aliases: []string{"write"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "save"},
		{Canonical: "load", Aliases: []string{"restore"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "load"},
		{Canonical: "slots", Aliases: []string{"saves"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "slots"},
		{Canonical: "quit", Aliases: []string{"exit", "q", "bye"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "quit"},
	} {
		r.RegisterCommand(cmd)
	}
	return r
}

// Commands lists the registered commands in canonical order.
func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}
