package tasklist

import "strings"

// lineKind classifies one line of a checklist document.
type lineKind int

const (
	lineBlank lineKind = iota
	lineTask
	lineMeta
	lineOther
)

// taskLine holds the fields of a scanned task line.
type taskLine struct {
	marker      byte
	description string
}

// metaLine holds the fields of a scanned metadata line.
type metaLine struct {
	key   string
	value string
}

// scanLine classifies a single line against the document grammar. Exactly
// one of the returned struct values is meaningful, selected by the kind.
func scanLine(line string) (lineKind, taskLine, metaLine) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return lineBlank, taskLine{}, metaLine{}
	}
	if task, ok := scanTaskLine(trimmed); ok {
		return lineTask, task, metaLine{}
	}
	if meta, ok := scanMetaLine(trimmed); ok {
		return lineMeta, taskLine{}, meta
	}
	return lineOther, taskLine{}, metaLine{}
}

// scanTaskLine matches "- [<marker>] [<ordinal>. ]<description>". The
// bracket must hold exactly one character; the ordinal is optional and is
// discarded (sequence numbers come from parse position, not the document).
func scanTaskLine(trimmed string) (taskLine, bool) {
	rest, ok := strings.CutPrefix(trimmed, "- [")
	if !ok {
		return taskLine{}, false
	}
	if len(rest) < 2 || rest[1] != ']' {
		return taskLine{}, false
	}
	marker := rest[0]
	if marker == ']' {
		return taskLine{}, false
	}
	desc := strings.TrimSpace(rest[2:])
	desc = stripOrdinal(desc)
	if desc == "" {
		return taskLine{}, false
	}
	return taskLine{marker: marker, description: desc}, true
}

// stripOrdinal removes a leading "N. " ordinal if present.
func stripOrdinal(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '.' {
		return s
	}
	return strings.TrimSpace(s[i+1:])
}

// scanMetaLine matches "key: value" where the key is a single token of
// letters, digits, '_' or '-'.
func scanMetaLine(trimmed string) (metaLine, bool) {
	colon := strings.IndexByte(trimmed, ':')
	if colon <= 0 {
		return metaLine{}, false
	}
	key := trimmed[:colon]
	if !ValidMetaKey(key) {
		return metaLine{}, false
	}
	return metaLine{key: key, value: strings.TrimSpace(trimmed[colon+1:])}, true
}

// ValidMetaKey reports whether key can serve as a metadata key: a
// non-empty token of letters, digits, '_' or '-'. Keys outside this set
// would not survive the serialize/parse round trip.
func ValidMetaKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-'
		if !valid {
			return false
		}
	}
	return true
}
