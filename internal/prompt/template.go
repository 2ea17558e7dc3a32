package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var varRe = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)\}\}`)

// Vars maps template variable names to their values.
type Vars map[string]string

// Render expands {{variable}} placeholders in tmpl. Every placeholder must
// have a value in vars; missing variables are collected and reported together.
func Render(tmpl string, vars Vars) (string, error) {
	missing := map[string]bool{}
	expanded := varRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := varRe.FindStringSubmatch(match)[1]
		val, ok := vars[name]
		if !ok {
			missing[name] = true
			return match
		}
		return val
	})

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return "", fmt.Errorf("missing template variables: %s", strings.Join(names, ", "))
	}
	return expanded, nil
}
