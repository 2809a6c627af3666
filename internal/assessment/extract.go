package assessment

// firstJSONObject returns the first balanced {...} span in s, found by
// bracket-depth scanning. The model routinely wraps its JSON in prose, so a
// naive "first { to last }" slice is not good enough. Braces inside JSON
// strings (and escaped quotes inside those strings) do not count toward the
// depth.
func firstJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
