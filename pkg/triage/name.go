package triage

import (
	"strings"
	"unicode"
)

const maxNameLength = 40

// FirstName extracts a display name from the answer to the identification
// question ("name, age, whatsapp, city"): the text before the first comma,
// reduced to its first word. Best effort and non-authoritative; any failure
// yields "" and the flow carries on without a name.
func FirstName(answer string) string {
	head := answer
	if idx := strings.Index(answer, ","); idx >= 0 {
		head = answer[:idx]
	}
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return ""
	}
	name := fields[0]
	if len(name) > maxNameLength {
		return ""
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return ""
		}
	}
	return name
}

// SubjectLabel anonymizes a first answer into the label stored with the
// report: first name only, or a fixed placeholder.
func SubjectLabel(firstAnswer string) string {
	if name := FirstName(firstAnswer); name != "" {
		return name
	}
	return "Anônimo"
}
