package assistant

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	for input, want := range map[string]Language{
		"":            LanguageEnglish,
		"english":     LanguageEnglish,
		"ENGLISH":     LanguageEnglish,
		"hindi-roman": LanguageHindiRoman,
	} {
		got, err := ParseLanguage(input)
		if err != nil || got != want {
			t.Fatalf("ParseLanguage(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseLanguage("french"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("got %v, want ErrUnsupportedLanguage", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("  fever and chills  ", false, LanguageEnglish)

	for _, want := range []string{
		"trusted medical AI assistant",
		`"fever and chills"`,
		"Likely diagnosis",
		"Evidence-based treatment options",
		"Important red flags",
		"Suggested tests if needed",
		"without disclaimers",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "image of the condition") {
		t.Fatal("image notice present without an image")
	}
	if strings.Contains(prompt, "Hindi") {
		t.Fatal("transliteration line present for english")
	}
}

func TestBuildPromptImageAndHindi(t *testing.T) {
	prompt := BuildPrompt("rash", true, LanguageHindiRoman)

	if !strings.Contains(prompt, "An image of the condition is provided.") {
		t.Fatal("image notice missing")
	}
	if !strings.Contains(prompt, "Hindi using Roman script") {
		t.Fatal("transliteration instruction missing")
	}
	// The language instruction comes last so it governs the whole answer.
	if !strings.HasSuffix(prompt, hindiRomanInstruction) {
		t.Fatal("transliteration instruction is not the final line")
	}
}

func TestBuildPromptStable(t *testing.T) {
	// Identical inputs must render identical prompts; the cache keys on the
	// prompt text.
	a := BuildPrompt("fever", false, LanguageEnglish)
	b := BuildPrompt("fever", false, LanguageEnglish)
	if a != b {
		t.Fatal("prompt rendering is not deterministic")
	}
}
