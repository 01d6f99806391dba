package triage

import (
	"strings"
	"time"
)

// ReportFailurePlaceholder replaces the analysis section when the generator
// failed. Persisted records must never carry an empty report, so every
// caller substitutes this exact string on failure.
const ReportFailurePlaceholder = "ERRO: O relatório da IA não foi gerado."

const (
	documentHeader  = "## Relatório de Triagem — REDE ELLe"
	answersHeader   = "## Respostas da Triagem"
	analysisHeader  = "## Exame Psíquico (Análise)"
	documentFooter  = "## Fim do Relatório"
	timestampPrefix = "Gerado em: "
)

// CompileDocument assembles the storable/emailable document from the ordered
// answers and the generated analysis. Deterministic and total: two calls
// with the same inputs differ only in the timestamp line, a nil or empty
// answers slice is fine, and an empty analysis yields the fixed placeholder.
func CompileDocument(answers []AnswerEntry, analysis string, now time.Time) string {
	var b strings.Builder

	b.WriteString(documentHeader)
	b.WriteString("\n")
	b.WriteString(timestampPrefix)
	b.WriteString(now.Format(time.RFC3339))
	b.WriteString("\n\n")

	b.WriteString(answersHeader)
	b.WriteString("\n")
	for _, e := range answers {
		// Defensive filter: an entry without a label cannot be attributed
		// to a question and is dropped rather than emitted half-formed.
		if strings.TrimSpace(e.Question) == "" {
			continue
		}
		b.WriteString(e.Question)
		b.WriteString(": ")
		b.WriteString(e.Answer)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(analysisHeader)
	b.WriteString("\n")
	if strings.TrimSpace(analysis) == "" {
		b.WriteString(ReportFailurePlaceholder)
	} else {
		b.WriteString(analysis)
	}
	b.WriteString("\n\n")

	b.WriteString(documentFooter)
	b.WriteString("\n")

	return b.String()
}
