package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRisk_FlagsCrisisKeywords(t *testing.T) {
	assert.True(t, DetectRisk("às vezes penso em suicídio"))
	assert.True(t, DetectRisk("tenho vontade de me matar"))
	assert.True(t, DetectRisk("quero acabar com a minha vida"))
	assert.True(t, DetectRisk("sometimes I want to kill myself"))
}

func TestDetectRisk_IsCaseInsensitive(t *testing.T) {
	assert.True(t, DetectRisk("PENSEI EM SUICIDIO ontem"))
	assert.True(t, DetectRisk("Me Matar é algo que já considerei"))
}

func TestDetectRisk_MatchesInsideLongerSentences(t *testing.T) {
	assert.True(t, DetectRisk("meu irmão falava muito sobre homicídio e isso me assusta"))
}

func TestDetectRisk_FlagsNonReflexiveIntent(t *testing.T) {
	// "matar" flags on its own, with or without a reflexive pronoun.
	assert.True(t, DetectRisk("penso em matar alguém"))
	assert.True(t, DetectRisk("ela disse que vai se machucar"))
}

func TestDetectRisk_IgnoresNeutralText(t *testing.T) {
	assert.False(t, DetectRisk("tive uma infância tranquila no interior"))
	assert.False(t, DetectRisk(""))
	assert.False(t, DetectRisk("durmo mal e sinto ansiedade"))
}
