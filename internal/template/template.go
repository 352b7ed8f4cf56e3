package template

import (
	"fmt"
	"strings"
)

// MissingValueError reports a placeholder that has neither a supplied value
// nor a default at resolution time.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no value for placeholder {%s}", e.Name)
}

// ExtractPlaceholders scans command text for {name} markers left to right and
// returns the names de-duplicated by first occurrence. Names are restricted
// to letters, digits and underscores; malformed markers (unmatched brace,
// empty or illegal name) are skipped, not errors.
func ExtractPlaceholders(command string) []string {
	var names []string
	seen := make(map[string]struct{})
	runes := []rune(command)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '{' {
			continue
		}
		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '}' {
				end = j
				break
			}
			if runes[j] == '{' {
				break
			}
		}
		if end < 0 {
			continue
		}
		name := string(runes[i+1 : end])
		if !validName(name) {
			i = end
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		i = end
	}
	return names
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Resolve substitutes every extracted placeholder with its value. The
// substitution is atomic: it fails with MissingValueError before producing
// any output when a placeholder has no value, so a partially resolved
// command can never reach the executor.
func Resolve(command string, values map[string]string) (string, error) {
	names := ExtractPlaceholders(command)
	for _, name := range names {
		if _, ok := values[name]; !ok {
			return "", &MissingValueError{Name: name}
		}
	}
	resolved := command
	for _, name := range names {
		resolved = strings.ReplaceAll(resolved, "{"+name+"}", values[name])
	}
	return resolved, nil
}
