package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Document is a lesson source file. The body becomes a Reading block and
// each media entry becomes a Video or Image block placed after it.
type Document struct {
	Path    string
	Lesson  string
	Title   string
	Caption string
	Order   int
	Media   []MediaRef
	Body    []byte
}

// MediaRef declares a media block in frontmatter.
type MediaRef struct {
	Kind    string `yaml:"kind"`
	URL     string `yaml:"url"`
	Caption string `yaml:"caption"`
}

type frontMatterEnvelope struct {
	Lesson  string     `yaml:"lesson"`
	Title   string     `yaml:"title"`
	Caption string     `yaml:"caption"`
	Order   int        `yaml:"order"`
	Media   []MediaRef `yaml:"media"`
}

// ParseDocument splits source into frontmatter and Markdown body.
func ParseDocument(path string, source []byte) (*Document, error) {
	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	caption := strings.TrimSpace(meta.Caption)
	if caption == "" {
		caption = strings.TrimSpace(meta.Title)
	}

	media := make([]MediaRef, 0, len(meta.Media))
	for _, ref := range meta.Media {
		ref.Kind = strings.ToLower(strings.TrimSpace(ref.Kind))
		ref.URL = strings.TrimSpace(ref.URL)
		ref.Caption = strings.TrimSpace(ref.Caption)
		media = append(media, ref)
	}

	return &Document{
		Path:    path,
		Lesson:  strings.TrimSpace(meta.Lesson),
		Title:   strings.TrimSpace(meta.Title),
		Caption: caption,
		Order:   meta.Order,
		Media:   media,
		Body:    body,
	}, nil
}
