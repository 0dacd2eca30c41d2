package openai

// truncate bounds text to a prefix of max bytes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// truncateWithEllipsis bounds text to a prefix of max bytes and marks
// the cut so the model knows content was elided.
func truncateWithEllipsis(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
