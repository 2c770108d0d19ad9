package main

import (
	"fmt"
	"os"
	"path/filepath"

	lessons "github.com/goliatone/go-lessons"
	"github.com/goliatone/go-lessons/internal/identity"
	"github.com/goliatone/go-lessons/internal/markdown"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import markdown files as lesson blocks",
		Long:  "Each markdown file becomes a reading block followed by the media blocks listed in its frontmatter.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	cmd.Flags().StringP("lesson", "l", "", "Lesson id or code (default: frontmatter lesson)")
	cmd.Flags().BoolP("recursive", "r", false, "Walk sub directories")

	rootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	lessonFlag, _ := cmd.Flags().GetString("lesson")
	recursive, _ := cmd.Flags().GetBool("recursive")

	docs, err := loadDocuments(cmd, args[0], recursive)
	if err != nil {
		return err
	}

	groups, order, err := groupByLesson(docs, lessonFlag)
	if err != nil {
		return err
	}

	module, err := openModule()
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	for _, lesson := range order {
		if err := module.ImportLesson(cmd.Context(), lesson, groups[lesson]...); err != nil {
			return fmt.Errorf("import lesson %s: %w", lesson, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d document(s) into %s\n", len(groups[lesson]), lesson)
	}
	return nil
}

func loadDocuments(cmd *cobra.Command, path string, recursive bool) ([]*markdown.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		loader := markdown.NewLoader(os.DirFS(filepath.Dir(path)))
		doc, err := loader.LoadFile(cmd.Context(), filepath.Base(path))
		if err != nil {
			return nil, err
		}
		return []*markdown.Document{doc}, nil
	}
	loader := markdown.NewLoader(os.DirFS(path), markdown.WithRecursive(recursive))
	docs, err := loader.LoadDirectory(cmd.Context(), ".")
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", path)
	}
	return docs, nil
}

// groupByLesson keeps documents in load order within each lesson.
func groupByLesson(docs []*markdown.Document, override string) (map[uuid.UUID][]*lessons.MarkdownDocument, []uuid.UUID, error) {
	groups := map[uuid.UUID][]*lessons.MarkdownDocument{}
	var order []uuid.UUID
	for _, doc := range docs {
		raw := override
		if raw == "" {
			raw = doc.Lesson
		}
		if raw == "" {
			return nil, nil, fmt.Errorf("%s: no lesson given; use --lesson or a frontmatter lesson", doc.Path)
		}
		lesson := identity.ParseLesson(raw)
		if _, ok := groups[lesson]; !ok {
			order = append(order, lesson)
		}
		groups[lesson] = append(groups[lesson], doc)
	}
	return groups, order, nil
}
