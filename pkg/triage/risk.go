package triage

import "strings"

// riskKeywords are matched as case-insensitive substrings. Over-flagging is
// the safe default; a false positive costs one crisis message, a false
// negative costs much more.
var riskKeywords = []string{
	"suicídio",
	"suicidio",
	"homicídio",
	"homicidio",
	"matar",
	"tirar minha vida",
	"acabar com a minha vida",
	"me machucar",
	"se machucar",
	"me cortar",
	"to kill",
	"kill myself",
	"self-harm",
	"suicide",
}

// DetectRisk scans a subject's answer for crisis keywords. Pure and total:
// no error path, no external calls. It must run before any other side effect
// of a turn so the flag survives later failures.
func DetectRisk(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range riskKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
