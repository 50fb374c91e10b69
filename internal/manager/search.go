package manager

import (
	"bufio"
	"strings"
)

// ParseSearch extracts package names from `-Ss` output, in listing order and
// without duplicates. Result lines look like
//
//	core/firefox 120.0-1 [installed]
//	    description text
//
// Indented description lines and anything without a repo/name token followed
// by a version are skipped.
func ParseSearch(raw string) []string {
	results := []string{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		name, ok := parseSearchLine(scanner.Text())
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		results = append(results, name)
	}
	return results
}

func parseSearchLine(line string) (string, bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", false
	}
	_, name, found := strings.Cut(fields[0], "/")
	if !found || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
