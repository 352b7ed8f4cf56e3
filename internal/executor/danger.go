package executor

import (
	"fmt"
	"regexp"

	"github.com/qlsh/quick-launcher/internal/logging"
)

type dangerPattern struct {
	re    *regexp.Regexp
	label string
}

// builtinPatterns flag command text that looks destructive. Matching is
// advisory: the launcher warns and asks, it never refuses.
var builtinPatterns = []struct {
	expr  string
	label string
}{
	{`\brm\s+-rf?\s+/`, "recursive delete near filesystem root"},
	{`\bshutdown\b`, "system shutdown"},
	{`\breboot\b`, "system reboot"},
	{`\bdd\s+if=`, "raw disk write (dd)"},
	{`\bmkfs\b`, "filesystem format (mkfs)"},
	{`>\s*/dev/sd[a-z]`, "redirect onto a block device"},
	{`\bsudo\b.*\brm\b`, "privileged delete"},
}

func compilePatterns(extra []string) []dangerPattern {
	patterns := make([]dangerPattern, 0, len(builtinPatterns)+len(extra))
	for _, p := range builtinPatterns {
		patterns = append(patterns, dangerPattern{re: regexp.MustCompile(`(?i)` + p.expr), label: p.label})
	}
	for _, expr := range extra {
		re, err := regexp.Compile(`(?i)` + expr)
		if err != nil {
			logging.Error(fmt.Errorf("skipping danger pattern %q: %w", expr, err))
			continue
		}
		patterns = append(patterns, dangerPattern{re: re, label: fmt.Sprintf("matches configured pattern %q", expr)})
	}
	return patterns
}
