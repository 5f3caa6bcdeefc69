package format

import (
	"fmt"
	"regexp"
)

// linePattern matches one raw log line: ISO timestamp with fractional
// seconds, an uppercase level, and the message remainder.
var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})T(\d{2}:\d{2}:\d{2})\.\d+\s*-\s*([A-Z]+)\s*-\s*(.*)$`)

// TransformLine rewrites one raw log line into its human-readable form
// "<date> <time> <LEVEL> <message>". The second return value reports
// whether the line matched; on no match the original line is returned
// unchanged so callers can pass it through.
func TransformLine(line string) (string, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return fmt.Sprintf("%s %s %s %s", m[1], m[2], m[3], m[4]), true
}
