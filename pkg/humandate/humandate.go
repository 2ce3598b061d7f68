// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

// Package humandate renders timestamps in the reader-facing format used by
// borrow/return dialogs.
//
// # Compatibility
//
// The format is consumed verbatim by existing frontend clients, so it must
// not drift: no leading zero on the day-of-month or hour, 12-hour clock,
// lower-case "a.m."/"p.m." suffix. Example: "Sat 5 Jul, 2025, 3:04 p.m.".
package humandate

import (
	"strings"
	"time"
)

// layout uses Go's no-leading-zero verbs ("2" for day, "3" for hour).
const layout = "Mon 2 Jan, 2006, 3:04PM"

// Format renders t in the frontend-compatible dialog format.
func Format(t time.Time) string {
	formatted := t.Format(layout)
	formatted = strings.Replace(formatted, "AM", " a.m.", 1)
	formatted = strings.Replace(formatted, "PM", " p.m.", 1)
	return formatted
}
