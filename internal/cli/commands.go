package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrapbook/internal/domain/models/vfs"
)

func (a *app) mountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mount",
		Short: "Create the scrapbook home and index new saved pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.services.Mount.Mount(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.IndexCreated {
				fmt.Fprintf(out, "created index in %s\n", a.cfg.Home)
			}
			for _, doc := range result.Added {
				fmt.Fprintf(out, "added %s\t%s\n", doc.DisplayName, doc.DocumentPath)
			}
			for _, ref := range result.Pruned {
				fmt.Fprintf(out, "pruned %s\n", ref.DocumentPath)
			}
			for _, dir := range result.Skipped {
				fmt.Fprintf(out, "skipped %s\n", dir)
			}
			return nil
		},
	}
}

func (a *app) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the whole folder tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := a.services.Tree.GetTree(cmd.Context())
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), tree.Root, 0)
			return nil
		},
	}
}

func (a *app) lsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [folder-path]",
		Short: "List the direct children of a folder (default root)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderPath := vfs.RootName
			if len(args) == 1 {
				folderPath = args[0]
			}

			contents, err := a.services.Folders.ListContents(cmd.Context(), folderPath)
			if err != nil {
				return err
			}
			printContents(cmd.OutOrStdout(), contents)
			return nil
		},
	}
}
