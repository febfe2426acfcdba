package build

import "fmt"

// FormatBytes renders a byte count with a binary unit suffix for build
// summaries.
func FormatBytes(n int) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	}
}

// FormatTokens renders an approximate token count, switching to thousands
// once the count passes 1k.
func FormatTokens(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("~%dk tokens", (n+500)/1000)
	}
	return fmt.Sprintf("~%d tokens", n)
}
