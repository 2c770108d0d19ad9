package main

import (
	"fmt"

	"github.com/goliatone/go-lessons/internal/identity"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "reorder <lesson> <block-id>...",
		Short: "Rewrite the order of a lesson's blocks",
		Long:  "Every block of the lesson must be listed exactly once, in the new order.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runReorder,
	})
}

func runReorder(cmd *cobra.Command, args []string) error {
	order := make([]uuid.UUID, 0, len(args)-1)
	for _, raw := range args[1:] {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid block id %q: %w", raw, err)
		}
		order = append(order, id)
	}

	module, err := openModule()
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	return module.ReorderLesson(cmd.Context(), identity.ParseLesson(args[0]), order)
}
