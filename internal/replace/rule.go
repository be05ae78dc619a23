package replace

import (
	"fmt"
	"regexp"
)

// Rule replaces every match of Pattern with Replacement. Replacement is
// literal text; "$" has no special meaning.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Literal builds a rule matching from verbatim.
func Literal(from, to string) Rule {
	return Rule{
		Pattern:     regexp.MustCompile(regexp.QuoteMeta(from)),
		Replacement: to,
	}
}

// Regex builds a rule from a regular expression.
func Regex(expr, to string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return Rule{Pattern: re, Replacement: to}, nil
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Pattern, r.Replacement)
}

// apply returns data with every match replaced and the number of matches.
func (r Rule) apply(data []byte) ([]byte, int) {
	matches := r.Pattern.FindAllIndex(data, -1)
	if len(matches) == 0 {
		return data, 0
	}
	return r.Pattern.ReplaceAllLiteral(data, []byte(r.Replacement)), len(matches)
}
