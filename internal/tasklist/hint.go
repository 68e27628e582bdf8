package tasklist

import (
	"strconv"
	"strings"
)

// intent is the parsed meaning of a caller hint.
type intent struct {
	ordinal    int
	hasOrdinal bool
	all        bool
}

// parseHint extracts selection intent from a free-text hint. An ordinal is
// recognized from a bare integer, "task N", or "#N"; all/remaining intent
// from the words "all", "remaining", "everything", or "rest". The first
// ordinal found wins.
func parseHint(hint string) intent {
	var in intent
	for _, tok := range strings.Fields(strings.ToLower(hint)) {
		tok = strings.Trim(tok, ".,;:!?()\"'")
		switch tok {
		case "all", "remaining", "everything", "rest":
			in.all = true
			continue
		}
		tok = strings.TrimPrefix(tok, "#")
		if in.hasOrdinal {
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil && n > 0 {
			in.ordinal = n
			in.hasOrdinal = true
		}
	}
	return in
}
