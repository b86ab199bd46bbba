package utils

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// RuneIndexToByteOffset converts a rune index to a byte offset in a string.
// Returns -1 if runeIndex is out of bounds.
func RuneIndexToByteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(s) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRuneInString(s[byteOffset:])
		byteOffset += size
		currentRune++
	}
	if currentRune == runeIndex {
		return len(s)
	} // Allow index at the very end
	return -1
}

// SplitAtRune splits s at a rune index. The index must already be in [0, rune count].
func SplitAtRune(s string, runeIndex int) (string, string) {
	b := RuneIndexToByteOffset(s, runeIndex)
	if b < 0 {
		return s, ""
	}
	return s[:b], s[b:]
}

// SnapToGrapheme moves a rune index back to the start of the grapheme cluster
// containing it, so "e" + combining accent or a ZWJ emoji sequence is never torn.
func SnapToGrapheme(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(s)
	start := 0
	for gr.Next() {
		end := start + len(gr.Runes())
		if runeIndex < end {
			return start
		}
		start = end
	}
	return start
}

// NextGrapheme returns the rune index of the grapheme boundary after runeIndex,
// or the rune count of s when runeIndex is in the last cluster.
func NextGrapheme(s string, runeIndex int) int {
	gr := uniseg.NewGraphemes(s)
	start := 0
	for gr.Next() {
		end := start + len(gr.Runes())
		if runeIndex < end {
			return end
		}
		start = end
	}
	return start
}

// PrevGrapheme returns the rune index of the grapheme boundary before runeIndex.
func PrevGrapheme(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(s)
	start := 0
	for gr.Next() {
		end := start + len(gr.Runes())
		if runeIndex <= end {
			return start
		}
		start = end
	}
	return start
}
