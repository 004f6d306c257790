package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseServiceID extracts a numeric service id from a command argument
// string.
func ParseServiceID(args string) (int64, error) {
	s := strings.TrimSpace(args)
	if s == "" {
		return 0, fmt.Errorf("service id is required")
	}
	id, err := strconv.ParseInt(strings.Fields(s)[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid service id %q", s)
	}
	return id, nil
}
