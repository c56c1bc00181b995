package assistant

import (
	"fmt"
	"strings"
)

// Language selects the language of the generated answer.
type Language string

const (
	LanguageEnglish    Language = "english"
	LanguageHindiRoman Language = "hindi-roman"
)

// ParseLanguage maps the request value to a Language; empty defaults to
// english.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageHindiRoman:
		return LanguageHindiRoman, nil
	default:
		return "", fmt.Errorf("assistant: %w: %q", ErrUnsupportedLanguage, s)
	}
}

const hindiRomanInstruction = "Translate your entire answer into Hindi using Roman script (English letters). Avoid technical English unless necessary."

// BuildPrompt renders the diagnosis prompt for the model. The structure is
// fixed; only the symptoms, the image notice and the language instruction
// vary.
func BuildPrompt(symptoms string, hasImage bool, lang Language) string {
	var b strings.Builder
	b.WriteString("You are a trusted medical AI assistant supporting a licensed doctor.\n\n")
	fmt.Fprintf(&b, "Patient symptoms:\n%q\n\n", strings.TrimSpace(symptoms))
	if hasImage {
		b.WriteString("An image of the condition is provided.\n\n")
	}
	b.WriteString("Please provide:\n")
	b.WriteString("- Likely diagnosis\n")
	b.WriteString("- Symptoms summary\n")
	b.WriteString("- Evidence-based treatment options\n")
	b.WriteString("- Important red flags\n")
	b.WriteString("- Suggested tests if needed\n\n")
	b.WriteString("Respond professionally without disclaimers.")
	if lang == LanguageHindiRoman {
		b.WriteString("\n\n")
		b.WriteString(hindiRomanInstruction)
	}
	return b.String()
}
