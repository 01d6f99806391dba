package triage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ai-intake-be/internal/constant"
	"ai-intake-be/pkg/llm"
)

const (
	// StrategyFixed picks acknowledgements round-robin from the approved
	// phrase set. StrategyAI delegates to the text generator under a
	// constrained prompt, falling back to a fixed phrase on any failure.
	StrategyFixed = "fixed"
	StrategyAI    = "ai"

	reflectionMaxWords = 25
	reflectionTimeout  = 15 * time.Second
)

// Reflector produces the short acknowledgement shown after each answer.
// It never fails: every path ends in usable, non-empty text with no
// question directed at the subject.
type Reflector struct {
	strategy string
	provider llm.LLMProvider

	mu   sync.Mutex
	next int // round-robin cursor for the fixed strategy
}

func NewReflector(strategy string, provider llm.LLMProvider) *Reflector {
	if provider == nil {
		strategy = StrategyFixed
	}
	if strategy != StrategyAI {
		strategy = StrategyFixed
	}
	return &Reflector{strategy: strategy, provider: provider}
}

// Reflect returns an acknowledgement for the given answer. Very short
// answers get a neutral receipt without an AI round trip.
func (r *Reflector) Reflect(ctx context.Context, answer, precedingQuestion, subjectName string) string {
	if len(strings.Fields(answer)) <= 3 {
		return constant.ShortAnswerReceived
	}

	if r.strategy == StrategyFixed {
		return r.nextPhrase()
	}

	ctx, cancel := context.WithTimeout(ctx, reflectionTimeout)
	defer cancel()

	userPrompt := fmt.Sprintf("A fala do paciente foi: %q\nGere uma única frase de acolhimento reflexivo.", answer)
	if subjectName != "" {
		userPrompt = fmt.Sprintf("O paciente se chama %s.\n%s", subjectName, userPrompt)
	}

	text, err := r.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.ReflectionSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithTemperature(0.8), llm.WithMaxTokens(50))
	if err != nil {
		return constant.ReflectionFallback
	}
	return sanitizeReflection(text)
}

// NeedsRephrase reports whether the answer signals the subject did not
// understand the pending question.
func (r *Reflector) NeedsRephrase(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range constant.IncomprehensionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Rephrase reformulates the pending question in a more inviting way. Unlike
// Reflect, the result is a re-prompt and may legitimately contain the
// question. Never fails.
func (r *Reflector) Rephrase(ctx context.Context, question string) string {
	fallback := fmt.Sprintf("Sem problemas. A pergunta é: %q. Por favor, sinta-se à vontade para responder como for mais confortável para você.", question)
	if r.strategy == StrategyFixed {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, reflectionTimeout)
	defer cancel()

	text, err := r.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.RephraseSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Pergunta original: %q\nReformule a pergunta de maneira convidativa.", question)},
	}, llm.WithTemperature(0.7), llm.WithMaxTokens(80))
	if err != nil || strings.TrimSpace(text) == "" {
		return fallback
	}
	return strings.TrimSpace(text)
}

func (r *Reflector) nextPhrase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	phrase := constant.ReflectionPhrases[r.next%len(constant.ReflectionPhrases)]
	r.next++
	return phrase
}

// sanitizeReflection enforces the acknowledgement contract on generated
// text: single line, no question marks, bounded length, never empty.
func sanitizeReflection(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "?", ".")
	words := strings.Fields(text)
	if len(words) > reflectionMaxWords {
		words = words[:reflectionMaxWords]
		text = strings.Join(words, " ")
		if !strings.HasSuffix(text, ".") {
			text += "."
		}
	}
	if strings.TrimSpace(text) == "" {
		return constant.ReflectionFallback
	}
	return text
}
