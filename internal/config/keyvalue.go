package config

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/tapesort/internal/tape"
)

// ParseKeyValue parses key=value lines into integer values.
//
// Spaces around keys and values are trimmed. Blank lines and lines starting
// with '#' are skipped. A later duplicate key overrides an earlier one.
// Keys outside the delay set are accepted and ignored by LoadDelays.
func ParseKeyValue(content string) (map[string]int64, error) {
	values := make(map[string]int64)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, lineError(lineNo, fmt.Sprintf("invalid key-value pair %q, expected <key>=<value>", line), nil)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, lineError(lineNo, fmt.Sprintf("empty key in %q", line), nil)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, lineError(lineNo, fmt.Sprintf("empty value in %q", line), nil)
		}

		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, lineError(lineNo, fmt.Sprintf("value of %q is not an integer: %q", key, value), err)
		}
		values[key] = n
	}
	if err := scanner.Err(); err != nil {
		return nil, tape.NewConfigurationError("cannot scan delay config", err)
	}
	return values, nil
}

func lineError(lineNo int, message string, err error) error {
	return tape.NewConfigurationError(fmt.Sprintf("line %d: %s", lineNo, message), err)
}
