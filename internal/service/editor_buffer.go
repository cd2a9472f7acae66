package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// BufferMode is how the content-editing surface presents the section body.
type BufferMode string

const (
	// ModeRich is the WYSIWYG surface; its buffer is markup.
	ModeRich BufferMode = "rich"
	// ModeCode shows the raw markup for hand editing.
	ModeCode BufferMode = "code"
	// ModeMarkdown holds Markdown that is converted to markup on flush.
	// Markup already in the buffer passes through unchanged.
	ModeMarkdown BufferMode = "markdown"
)

// ParseBufferMode maps a form value to a BufferMode, defaulting to rich.
func ParseBufferMode(s string) BufferMode {
	switch BufferMode(s) {
	case ModeCode, ModeMarkdown:
		return BufferMode(s)
	default:
		return ModeRich
	}
}

// EditorBuffer mirrors what the content-editing surface currently holds.
type EditorBuffer struct {
	Mode  BufferMode
	Text  string
	Dirty bool
}

// ContentRenderer turns an editor buffer into section markup.
type ContentRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewContentRenderer creates a renderer. When sanitize is set, every
// flushed body is passed through a user-generated-content policy that
// keeps basic formatting, links and lists but strips scripts and handlers.
//
// Markdown is rendered with raw HTML kept, since a section switched to
// markdown mode still holds its stored markup. Sanitizing happens after.
func NewContentRenderer(sanitize bool) *ContentRenderer {
	r := &ContentRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	if sanitize {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// Render converts the buffer to the markup stored in a section.
func (r *ContentRenderer) Render(b EditorBuffer) (string, error) {
	markup := b.Text
	if b.Mode == ModeMarkdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(b.Text), &buf); err != nil {
			return "", fmt.Errorf("failed to convert markdown: %w", err)
		}
		markup = buf.String()
	}
	return r.Sanitize(markup), nil
}

// Sanitize applies the content policy, if any.
func (r *ContentRenderer) Sanitize(markup string) string {
	if r.policy == nil {
		return markup
	}
	return r.policy.Sanitize(markup)
}
