package main

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-lessons/internal/identity"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list <lesson>",
		Short: "List the blocks of a lesson in order",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Print blocks as JSON")

	rootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	module, err := openModule()
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	blocks, err := module.Contents().ListByLesson(cmd.Context(), identity.ParseLesson(args[0]))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		b, _ := json.MarshalIndent(blocks, "", "  ")
		fmt.Fprintln(out, string(b))
		return nil
	}
	for _, block := range blocks {
		caption := ""
		if block.Caption != nil {
			caption = *block.Caption
		}
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", block.Position, block.Kind, block.ID, caption)
	}
	return nil
}
