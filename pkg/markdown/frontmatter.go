package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// Document is a markdown body with its front matter.
type Document struct {
	Meta map[string]any
	Body string
}

// String returns a string front matter value, or "" when the key is
// missing or not a string.
func (d *Document) String(key string) string {
	s, _ := d.Meta[key].(string)
	return s
}

// Parse splits YAML front matter from the markdown body. Content without
// an opening delimiter is returned as the body with empty metadata.
func Parse(content []byte) (*Document, error) {
	if !bytes.HasPrefix(content, delimiter) {
		return &Document{Meta: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	meta := map[string]any{}
	if head := rest[:end]; len(bytes.TrimSpace(head)) > 0 {
		if err := yaml.Unmarshal(head, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	body := rest[end+len(delimiter):]
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}

	return &Document{Meta: meta, Body: string(body)}, nil
}
