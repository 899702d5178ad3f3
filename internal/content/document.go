// Package content reads the content root: it parses page documents and scans
// the backing store into the observed navigation tree that reconciliation
// treats as ground truth.
package content

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// PlaceholderName is the empty blob written to keep a folder visible in
// stores that cannot represent empty directories.
const PlaceholderName = ".gitkeep"

// PageExt is the file extension of page documents.
const PageExt = ".md"

// Meta is the key-value preamble of a page document.
type Meta struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Link        string `yaml:"link,omitempty" json:"link,omitempty"`
	Do          string `yaml:"do,omitempty" json:"do,omitempty"`
	Dont        string `yaml:"dont,omitempty" json:"dont,omitempty"`
	Hero        string `yaml:"hero,omitempty" json:"hero,omitempty"`
}

// Document is one page file: a delimited YAML preamble followed by a
// markdown body.
type Document struct {
	Meta Meta
	Body string
}

// ParseDocument decodes a page file. A file without a preamble is valid: the
// whole text becomes the body and the metadata stays empty.
func ParseDocument(data []byte) (*Document, error) {
	text := string(data)
	if !strings.HasPrefix(text, frontmatterDelim+"\n") && text != frontmatterDelim {
		return &Document{Body: text}, nil
	}

	rest := strings.TrimPrefix(text, frontmatterDelim+"\n")
	// The leading newline makes the closing delimiter findable even when the
	// preamble is empty.
	head, body, found := strings.Cut("\n"+rest, "\n"+frontmatterDelim)
	if !found {
		return nil, fmt.Errorf("unterminated preamble")
	}
	head = strings.TrimPrefix(head, "\n")
	body = strings.TrimPrefix(body, "\n") // remainder of the delimiter line
	body = strings.TrimPrefix(body, "\n") // conventional blank separator

	var meta Meta
	if err := yaml.Unmarshal([]byte(head), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse preamble: %w", err)
	}
	return &Document{Meta: meta, Body: body}, nil
}

// Encode renders the document back to its file form. The preamble is always
// written, even when empty, so round-tripped files keep a stable shape.
func (d *Document) Encode() ([]byte, error) {
	head, err := yaml.Marshal(d.Meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preamble: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim + "\n")
	if string(head) != "{}\n" { // zero metadata marshals to an empty mapping
		buf.Write(head)
	}
	buf.WriteString(frontmatterDelim + "\n")
	if d.Body != "" {
		buf.WriteString("\n")
		buf.WriteString(d.Body)
	}
	return buf.Bytes(), nil
}
