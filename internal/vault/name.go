package vault

import (
	"regexp"
	"time"
)

var nameToken = regexp.MustCompile(`\{\{(date|time)(?::([^}]+))?\}\}`)

// FormatName expands the file name template tokens {{date}}, {{time}} and
// {{date:<go layout>}} / {{time:<go layout>}} against now. Default layouts
// avoid characters that are invalid in file names.
func FormatName(format string, now time.Time) string {
	return nameToken.ReplaceAllStringFunc(format, func(tok string) string {
		m := nameToken.FindStringSubmatch(tok)
		layout := m[2]
		if layout == "" {
			if m[1] == "date" {
				layout = "2006-01-02"
			} else {
				layout = "15.04.05"
			}
		}
		return now.Format(layout)
	})
}
