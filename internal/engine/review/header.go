package review

import (
	"fmt"
	"strings"
	"time"
)

// Attribution is the fixed reviewer name shown in every header.
const Attribution = "Code Review Agent"

// TimestampLayout renders the generation time to the second.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatHeader renders the metadata block prepended to every review.
func FormatHeader(at time.Time, length int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**📅 Review Generated:** %s\n", at.Format(TimestampLayout))
	fmt.Fprintf(&b, "**📏 Code Length:** %d characters\n", length)
	fmt.Fprintf(&b, "**🤖 Reviewed by:** %s\n\n---\n\n", Attribution)
	return b.String()
}
