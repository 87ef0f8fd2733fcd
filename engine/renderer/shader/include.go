package shader

import (
	"fmt"
	"strings"
)

// includeDirective marks a line that is replaced by registered WGSL text.
const includeDirective = "//@dust:include"

// expandIncludes replaces include directive lines with their registered source.
// Each name is injected at most once; later directives for the same name are dropped.
func expandIncludes(source string, includes map[string]string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)

	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), includeDirective)
		if !ok {
			out = append(out, line)
			continue
		}
		name := strings.TrimSpace(rest)
		if name == "" {
			return "", fmt.Errorf("line %d: include directive without a name", i+1)
		}
		text, ok := includes[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, strings.TrimRight(text, "\n"))
	}
	return strings.Join(out, "\n"), nil
}
