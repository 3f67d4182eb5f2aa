package rdfio

// stripGraphBlocks rewrites a TriG document into plain Turtle by removing
// named graph wrappers and keeping their contents. Graph labels (including
// an optional GRAPH keyword) are discarded: downstream conversion treats the
// dataset as the union of all graphs. Braces inside string literals are left
// alone.
func stripGraphBlocks(data []byte) []byte {
	out := make([]byte, 0, len(data))

	// pending buffers text since the last statement boundary at depth zero.
	// When a '{' appears, pending holds the graph label and is dropped.
	var pending []byte
	depth := 0

	var inString bool
	var quote byte
	var longQuote bool // """ or ''' block
	var inComment bool
	var inAngle bool // <...> IRI, may contain '.' or braces

	flush := func() {
		out = append(out, pending...)
		pending = nil
	}

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inComment {
			pending = append(pending, c)
			if c == '\n' {
				inComment = false
			}
			continue
		}

		if inAngle {
			pending = append(pending, c)
			if c == '>' {
				inAngle = false
			}
			continue
		}

		if inString {
			pending = append(pending, c)
			if c == '\\' && i+1 < len(data) {
				i++
				pending = append(pending, data[i])
				continue
			}
			if c == quote {
				if longQuote {
					if i+2 < len(data) && data[i+1] == quote && data[i+2] == quote {
						pending = append(pending, quote, quote)
						i += 2
						inString = false
					}
				} else {
					inString = false
				}
			}
			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			quote = c
			longQuote = i+2 < len(data) && data[i+1] == c && data[i+2] == c
			pending = append(pending, c)
			if longQuote {
				pending = append(pending, c, c)
				i += 2
			}
		case '<':
			inAngle = true
			pending = append(pending, c)
		case '#':
			inComment = true
			pending = append(pending, c)
		case '{':
			if depth == 0 {
				// Drop the graph label accumulated since the last boundary.
				pending = nil
			} else {
				flush()
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
			flush()
			out = append(out, '\n')
		case '.':
			pending = append(pending, c)
			flush()
		default:
			pending = append(pending, c)
		}
	}
	flush()
	return out
}
