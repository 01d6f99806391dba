package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstName_TakesTextBeforeFirstComma(t *testing.T) {
	assert.Equal(t, "Maria", FirstName("Maria, 34, 11999990000, São Paulo"))
}

func TestFirstName_ReducesToFirstWord(t *testing.T) {
	assert.Equal(t, "João", FirstName("João da Silva, 28, 11988887777, Campinas"))
}

func TestFirstName_AcceptsHyphenAndApostrophe(t *testing.T) {
	assert.Equal(t, "Ana-Clara", FirstName("Ana-Clara, 22"))
	assert.Equal(t, "D'Angelo", FirstName("D'Angelo, 30"))
}

func TestFirstName_RejectsNonLetterContent(t *testing.T) {
	assert.Equal(t, "", FirstName("34 anos, Maria"))
	assert.Equal(t, "", FirstName("@maria, 34"))
	assert.Equal(t, "", FirstName(""))
	assert.Equal(t, "", FirstName("   "))
}

func TestFirstName_RejectsOverlongToken(t *testing.T) {
	assert.Equal(t, "", FirstName(strings.Repeat("a", 41)+", 30"))
}

func TestSubjectLabel_FallsBackToAnonymous(t *testing.T) {
	assert.Equal(t, "Maria", SubjectLabel("Maria, 34, 11999990000, SP"))
	assert.Equal(t, "Anônimo", SubjectLabel("34, sem nome"))
	assert.Equal(t, "Anônimo", SubjectLabel(""))
}
