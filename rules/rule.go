package rules

import (
	"fmt"
	"strings"
)

// Rule selects the scoring method used when the game ends.
type Rule int

const (
	// Chinese is area scoring: stones on the board plus surrounded territory.
	Chinese Rule = iota
	// Japanese is territory scoring: surrounded territory plus prisoners.
	Japanese
)

func (r Rule) String() string {
	switch r {
	case Chinese:
		return "chinese"
	case Japanese:
		return "japanese"
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// ParseRule accepts "chinese"/"area" and "japanese"/"territory", in any case.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chinese", "area", "cn":
		return Chinese, nil
	case "japanese", "territory", "jp":
		return Japanese, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// KoRule selects which repeated positions are forbidden.
type KoRule int

const (
	// SimpleKo forbids recreating the position that stood just before the
	// opponent's most recent move.
	SimpleKo KoRule = iota
	// PositionalSuperko forbids recreating any position seen earlier in the game.
	PositionalSuperko
)

func (k KoRule) String() string {
	switch k {
	case SimpleKo:
		return "simple"
	case PositionalSuperko:
		return "superko"
	}
	return fmt.Sprintf("korule(%d)", int(k))
}

// ParseKoRule accepts "simple" and "superko" (or "positional").
func ParseKoRule(s string) (KoRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "ko", "":
		return SimpleKo, nil
	case "superko", "positional", "positional-superko":
		return PositionalSuperko, nil
	}
	return 0, fmt.Errorf("%w: ko rule %q", ErrUnknownRule, s)
}
