// Package frontmatter parses the delimited metadata block at the top of a
// content file. Parsing is a pure, single-pass transformation: no I/O beyond
// the input, no partial records. A document either yields a full Document or
// fails with one of the core sentinel errors.
package frontmatter

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/peat/pkg/core"
)

// Delimiter is the line that bounds the front-matter block.
const Delimiter = "---"

// Document is a raw parsed content file: the front-matter mapping plus the
// untouched Markdown body. Mapping to a core.Post (required fields, tags
// normalization) is a separate step, see MapPost.
type Document struct {
	Meta core.Metadata
	Body string
}

// Parse reads the full input and parses it. See ParseBytes.
func Parse(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read input: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes splits the leading delimited block from the body and decodes
// the block as YAML. Unknown keys are preserved opaquely in Meta.
//
// Errors wrap core.ErrMissingFrontMatter, core.ErrUnterminatedFrontMatter,
// or core.ErrMalformedField.
func ParseBytes(data []byte) (Document, error) {
	doc := Document{Meta: core.Metadata{}}

	rest, ok := consumeOpeningDelimiter(data)
	if !ok {
		return doc, fmt.Errorf("document does not begin with a %q line: %w", Delimiter, core.ErrMissingFrontMatter)
	}

	block, body, ok := splitAtClosingDelimiter(rest)
	if !ok {
		return doc, fmt.Errorf("no closing %q line before end of input: %w", Delimiter, core.ErrUnterminatedFrontMatter)
	}

	if len(bytes.TrimSpace(block)) > 0 {
		if err := yaml.Unmarshal(block, &doc.Meta); err != nil {
			return doc, fmt.Errorf("front matter block is not a key/value mapping: %v: %w", err, core.ErrMalformedField)
		}
	}
	if doc.Meta == nil {
		doc.Meta = core.Metadata{}
	}

	doc.Body = trimLeadingBlankLines(string(body))
	return doc, nil
}

// Serialize reconstructs the delimited form of a document. Re-parsing the
// output yields the same record (modulo YAML key ordering).
func Serialize(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")
	if len(doc.Meta) > 0 {
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc.Meta); err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
	}
	buf.WriteString(Delimiter + "\n")
	buf.WriteString(doc.Body)
	return buf.Bytes(), nil
}

// consumeOpeningDelimiter checks that data begins with a delimiter line and
// returns everything after it.
func consumeOpeningDelimiter(data []byte) ([]byte, bool) {
	line, rest := nextLine(data)
	if !isDelimiterLine(line) {
		return nil, false
	}
	// A bare "---" with no newline is an opening delimiter followed by
	// nothing; the closing scan will report it as unterminated.
	return rest, true
}

// splitAtClosingDelimiter scans for the next delimiter line. It returns the
// block before it and the body after it.
func splitAtClosingDelimiter(data []byte) (block, body []byte, ok bool) {
	offset := 0
	for offset <= len(data) {
		if offset == len(data) && len(data) > 0 {
			break
		}
		line, rest := nextLine(data[offset:])
		if isDelimiterLine(line) {
			return data[:offset], rest, true
		}
		advance := len(data[offset:]) - len(rest)
		if advance == 0 {
			break
		}
		offset += advance
	}
	return nil, nil, false
}

// nextLine returns the first line of data (without its terminator) and the
// remainder after the terminator.
func nextLine(data []byte) (line, rest []byte) {
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return data, nil
	}
	return data[:idx], data[idx+1:]
}

// isDelimiterLine reports whether the line contains only the delimiter,
// tolerating a trailing CR from CRLF input.
func isDelimiterLine(line []byte) bool {
	line = bytes.TrimSuffix(line, []byte("\r"))
	return string(line) == Delimiter
}

// trimLeadingBlankLines strips empty lines between the closing delimiter
// and the first line of content.
func trimLeadingBlankLines(body string) string {
	for {
		switch {
		case len(body) >= 2 && body[:2] == "\r\n":
			body = body[2:]
		case len(body) >= 1 && body[0] == '\n':
			body = body[1:]
		default:
			return body
		}
	}
}
