// Package markdown renders Markdown into lesson Reading markup and loads
// lesson documents (frontmatter plus body) from a filesystem.
package markdown
