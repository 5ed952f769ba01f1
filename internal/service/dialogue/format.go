package dialogue

import (
	"strconv"
	"strings"
	"time"
)

// formatINR renders an amount with Indian digit grouping, e.g.
// 1234567 → "12,34,567".
func formatINR(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if negative {
		s = "-" + s
	}
	return s
}

func formatTime(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04")
}
