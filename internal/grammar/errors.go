package grammar

import (
	"fmt"
	"strings"
)

// SyntaxError reports input the grammar does not accept. Offset and End are
// byte offsets of the offending text.
type SyntaxError struct {
	Message  string
	Offset   int
	End      int
	Rule     Rule     // rule being recognized when the error occurred
	Expected []string // alternatives the grammar would have accepted
	Found    string
}

func (e *SyntaxError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("expected %s, found %s", joinAlternatives(e.Expected), e.Found)
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 0:
		return "nothing"
	case 1:
		return alts[0]
	default:
		return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
	}
}
