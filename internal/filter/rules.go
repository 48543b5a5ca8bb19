// Package filter decides which files under a source directory are uploaded.
//
// Classification is a pure function of the bare filename. Walk drives the
// directory traversal and reports every skipped path to the caller.
package filter

import (
	"fmt"
	"regexp"
)

// Rule is a single exclusion rule matched against a bare filename.
// A rule is either an exact literal name or an anchored regular expression.
type Rule struct {
	Name    string
	Literal string
	Pattern *regexp.Regexp
}

// Matches reports whether the filename is excluded by this rule
func (r Rule) Matches(name string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(name)
	}
	return r.Literal != "" && name == r.Literal
}

func (r Rule) String() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Pattern != nil {
		return r.Pattern.String()
	}
	return r.Literal
}

// LiteralRule excludes files whose name equals name exactly
func LiteralRule(name string) Rule {
	return Rule{Name: name, Literal: name}
}

// PatternRule excludes files whose whole name matches expr, ignoring case.
// The expression is anchored at both ends and `.` does not match a newline.
func PatternRule(expr string) (Rule, error) {
	re, err := regexp.Compile(`(?i)^(?:` + expr + `)$`)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return Rule{Name: expr, Pattern: re}, nil
}

func mustPatternRule(expr string) Rule {
	r, err := PatternRule(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// Rules is an ordered set of exclusion rules
type Rules []Rule

// DefaultRules returns the fixed exclusion set: OS metadata files,
// AppleDouble resource forks and dotfiles.
func DefaultRules() Rules {
	return Rules{
		LiteralRule(".DS_Store"),
		LiteralRule("Thumbs.db"),
		LiteralRule("_MACOSX"),
		mustPatternRule(`\._.*`),
		mustPatternRule(`\..*`),
	}
}

// Classify reports whether name passes every rule. When it does not, the
// first matching rule is returned.
func Classify(name string, rules Rules) (bool, *Rule) {
	for i := range rules {
		if rules[i].Matches(name) {
			return false, &rules[i]
		}
	}
	return true, nil
}

// Included is a convenience wrapper around Classify
func Included(name string, rules Rules) bool {
	ok, _ := Classify(name, rules)
	return ok
}
