package lookup

import (
	"sort"
	"strings"
)

// ByName returns catalog entries whose name contains the input, shortest
// names first so the tightest match leads.
func (c *Catalog) ByName(input string) []Entry {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	var matched []Entry
	lowered := strings.ToLower(input)
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Name), lowered) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return len(matched[i].Name) < len(matched[j].Name)
	})
	return matched
}

// ByLetters returns entries whose letter abbreviation starts with the
// input. Exact abbreviation matches sort first, then shorter abbreviations.
func (c *Catalog) ByLetters(input string) []Entry {
	input = strings.ToUpper(strings.TrimSpace(input))
	if input == "" {
		return nil
	}
	var matched []Entry
	for _, e := range c.entries {
		if strings.HasPrefix(e.Letters, input) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ei, ej := matched[i], matched[j]
		exactI, exactJ := ei.Letters == input, ej.Letters == input
		if exactI != exactJ {
			return exactI
		}
		return len(ei.Letters) < len(ej.Letters)
	})
	return matched
}

// MatchCode resolves free-form input to an exchange-qualified code.
// Resolution order: already-qualified code, bare digits with a known
// prefix pattern, letter abbreviation, then name substring.
func (c *Catalog) MatchCode(input string) (code string, hk bool, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false, false
	}

	if strings.HasPrefix(input, "sh.") || strings.HasPrefix(input, "sz.") || strings.HasPrefix(input, "hk.") {
		return input, strings.HasPrefix(input, "hk."), true
	}

	if isDigits(input) {
		switch {
		case strings.HasPrefix(input, "60"), strings.HasPrefix(input, "68"):
			return "sh." + input, false, true
		case strings.HasPrefix(input, "00"), strings.HasPrefix(input, "30"):
			return "sz." + input, false, true
		case len(input) == 5:
			return "hk." + input, true, true
		}
	}

	if matched := c.ByLetters(input); len(matched) > 0 {
		e := matched[0]
		return e.Code, e.HK(), true
	}
	if matched := c.ByName(input); len(matched) > 0 {
		e := matched[0]
		return e.Code, e.HK(), true
	}
	return "", false, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
