// Package jsonstream extracts complete top-level objects from a large
// JSON array without building a parse tree for the whole payload.
//
// The country/state/city datasets arrive as a single JSON array that can
// run to tens of megabytes. Decoding the whole array allocates a tree
// several times the input size; the scanner below instead walks the bytes
// once, tracking brace depth, and hands each complete object to the
// caller as a self-contained slice. Auxiliary memory is bounded by the
// largest single record.
package jsonstream

import (
	"bufio"
	"errors"
	"io"
)

// ErrStop can be returned by an EachObject callback to end the scan early
// without reporting an error to the caller.
var ErrStop = errors.New("jsonstream: stop")

// EachObject scans r for a top-level JSON array and calls fn once for each
// complete object found directly inside it. The slice passed to fn is only
// valid for the duration of the call; decode or copy it before returning.
//
// Braces inside quoted strings are ignored for depth tracking, honoring
// backslash escapes, so values like "name": "{odd} town" do not corrupt
// the scan. Whitespace and commas between objects are skipped. The scan
// ends at the bracket closing the top-level array; trailing bytes are not
// read.
func EachObject(r io.Reader, fn func(obj []byte) error) error {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		inArray  bool
		inString bool
		escaped  bool
		depth    int
		buf      []byte
	)

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if !inArray {
			if c == '[' {
				inArray = true
			}
			continue
		}

		if inString {
			buf = append(buf, c)
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
		case '{':
			if depth == 0 {
				buf = buf[:0]
			}
			buf = append(buf, c)
			depth++
		case '}':
			depth--
			buf = append(buf, c)
			if depth == 0 {
				if err := fn(buf); err != nil {
					if errors.Is(err, ErrStop) {
						return nil
					}
					return err
				}
				buf = buf[:0]
			}
		case '"':
			if depth > 0 {
				buf = append(buf, c)
				inString = true
			}
		case ']':
			if depth == 0 {
				// End of the top-level array.
				return nil
			}
			buf = append(buf, c)
		default:
			if depth > 0 {
				buf = append(buf, c)
			}
		}
	}
}
