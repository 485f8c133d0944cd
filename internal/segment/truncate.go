package segment

const ellipsisGlyphConstant = "…"

// TruncateName shortens a display name to at most maximumLength characters,
// replacing the clipped tail with a single ellipsis glyph. A maximum of zero
// or below disables truncation. Counting is rune based so multi-byte glyphs
// are never split inside an encoding unit.
func TruncateName(name string, maximumLength int) string {
	if maximumLength <= 0 {
		return name
	}

	nameRunes := []rune(name)
	if len(nameRunes) <= maximumLength {
		return name
	}

	if maximumLength <= 1 {
		return ellipsisGlyphConstant
	}

	return string(nameRunes[:maximumLength-1]) + ellipsisGlyphConstant
}
