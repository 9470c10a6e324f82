package parser

// Outcome is the three-way result of one grammar production attempt.
//
// The distinction between NoMatch and Failed is what lets the top-level
// loop speculate between productions without backtracking diagnostics:
// NoMatch promises that no tokens were consumed and nothing was reported,
// so the caller is free to try the next alternative. Failed promises that
// exactly one error diagnostic was already appended.
type Outcome uint8

const (
	// Matched means the production consumed its tokens and built a node.
	Matched Outcome = iota
	// NoMatch means the production did not apply; cursor and diagnostic
	// sink are untouched.
	NoMatch
	// Failed means a committed production hit a syntax error; one error
	// diagnostic has been appended before the outcome was returned.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "Matched"
	case NoMatch:
		return "NoMatch"
	case Failed:
		return "Failed"
	}
	return "Outcome(?)"
}
