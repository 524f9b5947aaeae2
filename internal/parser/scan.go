package parser

import (
	"fmt"
	"strings"
)

// ScanMode selects how the JSON array is located inside the response.
type ScanMode string

const (
	// ScanFirstClosing takes the region from the first '[' to the first ']'
	// after it. A nested array inside an item truncates the region, which then
	// fails as malformed JSON.
	ScanFirstClosing ScanMode = "first"

	// ScanBalanced tracks bracket depth and skips brackets inside string
	// literals, so nested arrays are kept whole.
	ScanBalanced ScanMode = "balanced"
)

// ParseScanMode converts a configuration value into a ScanMode.
func ParseScanMode(s string) (ScanMode, error) {
	switch m := ScanMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ScanFirstClosing, ScanBalanced:
		return m, nil
	case "":
		return ScanFirstClosing, nil
	default:
		return "", fmt.Errorf("unknown scan mode %q (supported: first, balanced)", s)
	}
}

// locate returns the candidate array text. ok is false only when there is no
// '[' at all; an unterminated array yields the rest of the text so the
// decoder reports it as malformed.
func locate(raw string, mode ScanMode) (fragment string, ok bool) {
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		return "", false
	}

	var end int
	if mode == ScanBalanced {
		end = balancedEnd(raw, start)
	} else {
		end = strings.IndexByte(raw[start:], ']')
		if end >= 0 {
			end += start
		}
	}
	if end < 0 {
		return raw[start:], true
	}
	return raw[start : end+1], true
}

// balancedEnd returns the index of the ']' closing the '[' at start, or -1.
func balancedEnd(raw string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				if c == ']' {
					return i
				}
				return -1
			}
		}
	}
	return -1
}
