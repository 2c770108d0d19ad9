package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "delete <block-id>",
		Short: "Delete a block and close the gap in its lesson",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid block id %q: %w", args[0], err)
	}

	module, err := openModule()
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	if err := module.DeleteContent(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	return nil
}
