package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// Quantity is a count attached to a command, e.g. "3", "3h" or "2d".
type Quantity struct {
	Raw  string
	N    int
	Unit string
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries what the console knows about the session.
type ParseContext struct {
	// Kinds are the weather kind labels "add" can resolve to. Empty means
	// every known kind.
	Kinds []string
	// LastKind is the label "it" and "that" refer to.
	LastKind string
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	HandlerKey string
	// Counted commands read a leading number as a Quantity instead of an
	// argument.
	Counted bool
}
