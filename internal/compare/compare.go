// Package compare holds the comparators shared by the card view, the
// table view and the filter sidebar, so that every surface orders items
// the same way.
package compare

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// missingDate is the stand-in for items without a production date so
// they sort as the oldest.
var missingDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// DateOrEpoch substitutes the 1900-01-01 floor for zero times
func DateOrEpoch(t time.Time) time.Time {
	if t.IsZero() {
		return missingDate
	}
	return t
}

// Dates compares two timestamps with the missing-date floor applied
func Dates(a, b time.Time) int {
	return DateOrEpoch(a).Compare(DateOrEpoch(b))
}

// Natural compares alphanumeric strings treating embedded digit runs as
// numbers, so "item2" < "item10". Non-digit runs compare lexically and
// case-insensitively; when one string runs out of tokens it sorts first.
func Natural(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			// Compare the full digit runs numerically
			ia := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			jb := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[ia:i], "0")
			nb := strings.TrimLeft(b[jb:j], "0")
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// dimensionSeparators are the glyph variants found in free-text
// dimension strings ("100×50", "100*50", "100X50").
var dimensionSeparators = strings.NewReplacer("×", "x", "Ｘ", "x", "X", "x", "*", "x", "＊", "x")

// DimensionKey parses up to three leading numeric components out of a
// free-text dimension string. The second return is false when nothing
// numeric could be parsed.
func DimensionKey(s string) ([3]float64, int, bool) {
	var key [3]float64
	normalized := dimensionSeparators.Replace(strings.TrimSpace(s))
	parts := strings.Split(normalized, "x")
	n := 0
	for _, part := range parts {
		if n >= 3 {
			break
		}
		num := leadingNumber(part)
		if num == "" {
			break
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			break
		}
		key[n] = v
		n++
	}
	return key, n, n > 0
}

func leadingNumber(s string) string {
	s = strings.TrimSpace(s)
	end := 0
	dot := false
	for end < len(s) {
		c := s[end]
		if isDigit(c) {
			end++
			continue
		}
		if c == '.' && !dot && end > 0 {
			dot = true
			end++
			continue
		}
		break
	}
	return s[:end]
}

// Dimensions compares dimension strings component-wise on their parsed
// numeric components. Missing components sort after present ones; values
// with no numeric component fall back to Natural between themselves and
// sort after parseable values (the caller keeps them last regardless of
// sort direction, see DimensionsParsed).
func Dimensions(a, b string) int {
	ka, na, oka := DimensionKey(a)
	kb, nb, okb := DimensionKey(b)
	switch {
	case !oka && !okb:
		return Natural(a, b)
	case !oka:
		return 1
	case !okb:
		return -1
	}
	for i := 0; i < 3; i++ {
		if i >= na && i >= nb {
			break
		}
		// A missing component sorts after a present one
		if i >= na {
			return 1
		}
		if i >= nb {
			return -1
		}
		if ka[i] != kb[i] {
			if ka[i] < kb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// DimensionsParsed reports whether a dimension string yields a numeric key.
// Unparseable values are pinned to the end of the list whichever direction
// the user sorts in.
func DimensionsParsed(s string) bool {
	_, _, ok := DimensionKey(s)
	return ok
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Japanese)
)

// Locale compares strings with Japanese collation, used for company and
// size facet values.
func Locale(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// SortStrings orders a string slice with the locale collator
func SortStrings(values []string) {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	collator.SortStrings(values)
}
