package utils

// Preview returns the first max runes of s, with "..." appended when s was
// truncated. Truncation is rune-aware so multi-byte text (Hangul, CJK) is
// never split mid-character. If max is 0 or negative, returns s unchanged.
func Preview(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
