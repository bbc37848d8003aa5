package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) Commands() []CommandDef {
	return p.registry.Commands()
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		if strings.TrimSpace(raw) == "?" {
			intent.Kind = Help
			intent.Verb = "help"
			intent.Confidence = 1
			return intent
		}
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Try help."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	weak := cmdMatch.Verb == "" || cmdMatch.Score < 0.5
	// A fuzzy hit on the first word of a sentence is weaker than a phrase.
	if weak || (cmdMatch.How == matchFuzzy && len(tokens) > 2) {
		if inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
	}
	if weak {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, status, events, hour, day, add, frame, save, load, quit.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Verb, Kind: commandKind(cmdMatch.Verb), Verb: cmdMatch.Verb, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Verb, Kind: commandKind(alternates[0].Verb), Verb: alternates[0].Verb, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Verb
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}

	def, _ := p.registry.command(intent.Verb)
	if def.Counted {
		argsTokens, intent.Quantity = splitQuantity(argsTokens)
	}

	resolvedArgs, clarify, argScore := p.resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if intent.Kind == Command && len(intent.Args) < def.MinArgs {
		if def.Canonical == "add" {
			intent.Clarify = &ClarifyQuestion{
				Prompt:  "Which weather?",
				Options: buildKindOptions(ctx),
			}
			intent.Confidence = 0.46
			return intent
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		intent.Confidence = 0.42
		return intent
	}

	if len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "status", "events", "slots":
		return Query
	default:
		return Command
	}
}

func splitQuantity(tokens []string) ([]string, *Quantity) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var q *Quantity
	for _, token := range tokens {
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				continue
			}
		}
		out = append(out, token)
	}
	return out, q
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i := 0; i < len(args); i++ {
		token := args[i]
		if !expectsKind(def.Canonical, len(resolved)) {
			resolved = append(resolved, token)
			continue
		}

		if isPronoun(token) {
			if strings.TrimSpace(ctx.LastKind) == "" {
				return nil, &ClarifyQuestion{Prompt: "Which weather does that refer to?"}, 0.4
			}
			resolved = append(resolved, normaliseInput(ctx.LastKind))
			score -= 0.08
			continue
		}

		joined := token
		// Kind labels can span two words ("acid shower").
		if i+1 < len(args) {
			try := token + " " + args[i+1]
			if _, s, _ := resolveKind(try, ctx); s > 0.9 {
				joined = try
				i++
			}
		}
		kind, confidence, tie := resolveKind(joined, ctx)
		if tie && len(kind) >= 2 {
			options := make([]Intent, 0, 2)
			for idx := 0; idx < 2; idx++ {
				options = append(options, Intent{
					Kind:       commandKind(def.Canonical),
					Verb:       def.Canonical,
					Args:       []string{kind[idx]},
					Confidence: confidence - float64(idx)*0.01,
				})
			}
			return nil, &ClarifyQuestion{
				Prompt:  fmt.Sprintf("Did you mean %s?", def.Canonical),
				Options: options,
			}, 0.52
		}
		if len(kind) == 1 {
			resolved = append(resolved, kind[0])
			score = minScore(score, confidence)
			continue
		}
		return nil, &ClarifyQuestion{
			Prompt:  fmt.Sprintf("Unknown weather %q.", joined),
			Options: buildKindOptions(ctx),
		}, 0.4
	}
	return resolved, nil, clampScore(score)
}

func expectsKind(verb string, argPos int) bool {
	return verb == "add" && argPos == 0
}

func knownKinds(ctx ParseContext) []string {
	if len(ctx.Kinds) > 0 {
		return mergeUnique(ctx.Kinds, nil)
	}
	out := make([]string, 0, 4)
	for _, k := range weather.Kinds() {
		out = append(out, k.Label())
	}
	return out
}

func resolveKind(token string, ctx ParseContext) ([]string, float64, bool) {
	n := normaliseInput(token)
	if n == "" {
		return nil, 0, false
	}
	known := knownKinds(ctx)
	if syn := kindSynonym(n); syn != "" {
		for _, k := range known {
			if k == syn {
				return []string{syn}, 0.96, false
			}
		}
	}
	var boost []string
	if last := normaliseInput(ctx.LastKind); last != "" {
		boost = []string{last}
	}
	return bestMatches(n, known, boost)
}

func bestMatches(token string, all []string, boost []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	boostSet := make(map[string]bool, len(boost))
	for _, n := range boost {
		boostSet[n] = true
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		if boostSet[cand] {
			score += 0.04
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildKindOptions(ctx ParseContext) []Intent {
	kinds := knownKinds(ctx)
	options := make([]Intent, 0, len(kinds))
	for _, k := range kinds {
		options = append(options, Intent{
			Kind:       Command,
			Verb:       "add",
			Args:       []string{k},
			Confidence: 0.88,
		})
	}
	return options
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, q *Quantity, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Quantity:   q,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "what s the weather", "whats the weather", "what is the weather", "how s the weather", "how is the weather", "is it raining") {
		return makeIntent(Query, "status", nil, nil, 0.9)
	}
	if containsAnyPhrase(n, "what s coming", "what is coming", "what s next", "any weather coming") {
		return makeIntent(Query, "events", nil, nil, 0.86)
	}
	if containsAnyPhrase(n, "skip to tomorrow", "until tomorrow", "next morning", "sleep it off") {
		return makeIntent(Command, "day", nil, nil, 0.84)
	}
	if containsAnyPhrase(n, "wait an hour", "wait a bit", "pass an hour") {
		return makeIntent(Command, "hour", nil, nil, 0.84)
	}

	// "make it rain", "let it snow"
	if containsAnyPhrase(n, "make it", "let it", "bring") {
		for _, token := range tokenise(n) {
			if kind := kindSynonym(token); kind != "" {
				return makeIntent(Command, "add", []string{kind}, nil, 0.8)
			}
		}
	}
	if containsWord(n, "again") && ctx.LastKind != "" {
		return makeIntent(Command, "add", []string{normaliseInput(ctx.LastKind)}, nil, 0.7)
	}
	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	add := func(list []string) {
		for _, v := range list {
			n := normaliseInput(v)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	add(a)
	add(b)
	return out
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders intent back into console input.
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		n := normaliseInput(arg)
		if n != "" {
			args = append(args, n)
		}
	}
	if intent.Quantity != nil && intent.Quantity.Raw != "" {
		args = append(args, normaliseInput(intent.Quantity.Raw))
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
