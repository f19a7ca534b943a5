package quiz

import "strings"

const fence = "```"

// Normalize trims whitespace and removes one opening fence (with an optional
// language tag such as ```json) and one closing fence. Text in between is left
// alone, so any residue is reported by the decoder rather than repaired here.
//
// Normalize(Normalize(x)) == Normalize(x) for every x: an output that still
// starts or ends with a fence is peeled again before returning. That makes
// directly nested fences the one input where more than one pair is removed.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)
	for {
		next := stripFences(text)
		if next == text {
			return text
		}
		text = next
	}
}

func stripFences(text string) string {
	if strings.HasPrefix(text, fence) {
		text = strings.TrimSpace(dropLanguageTag(strings.TrimPrefix(text, fence)))
	}
	if strings.HasSuffix(text, fence) {
		text = strings.TrimSuffix(text, fence)
		text = strings.TrimSpace(text)
	}
	return text
}

// dropLanguageTag removes a tag like "json" right after an opening fence. A
// word that runs straight into prose is not a tag and is kept.
func dropLanguageTag(text string) string {
	rest := strings.TrimLeftFunc(text, isLanguageTag)
	if rest == "" || strings.ContainsAny(rest[:1], "\r\n[{") {
		return rest
	}
	return text
}

func isLanguageTag(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '-' || r == '+'
}
