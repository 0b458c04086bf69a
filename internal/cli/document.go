package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vfsSvc "scrapbook/internal/domain/services/vfs"
)

func (a *app) documentCommand() *cobra.Command {
	docCmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"document"},
		Short:   "Manage indexed documents",
	}

	docCmd.AddCommand(
		a.docAddCommand(),
		a.docRemoveCommand(),
		&cobra.Command{
			Use:   "rename <document-path> <new-display-name>",
			Short: "Change the display name of a document",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				doc, err := a.services.Documents.RenameDocument(cmd.Context(), &vfsSvc.RenameDocumentRequest{
					DocumentPath:   args[0],
					NewDisplayName: args[1],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", doc.DisplayName)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mv <document-path> <target-folder-path>",
			Short: "Move a document to another folder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				current, err := a.services.Documents.GetDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				doc, err := a.services.Documents.MoveDocument(cmd.Context(), &vfsSvc.MoveDocumentRequest{
					DocumentPath:      args[0],
					CurrentFolderPath: current.FolderPath,
					TargetFolderPath:  args[1],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s\n", doc.DisplayName, doc.FolderPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "view <document-path>",
			Short: "Record that a document was viewed now",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				doc, err := a.services.Documents.MarkViewed(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printDocument(cmd.OutOrStdout(), doc)
			},
		},
		&cobra.Command{
			Use:   "tag <document-path> [tag...]",
			Short: "Replace the tags of a document (no tags clears them)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				doc, err := a.services.Documents.SetTags(cmd.Context(), &vfsSvc.SetTagsRequest{
					DocumentPath: args[0],
					Tags:         args[1:],
				})
				if err != nil {
					return err
				}
				return printDocument(cmd.OutOrStdout(), doc)
			},
		},
		&cobra.Command{
			Use:   "show <document-path>",
			Short: "Print a document's index entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				doc, err := a.services.Documents.GetDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printDocument(cmd.OutOrStdout(), doc)
			},
		},
		a.docExportCommand(),
	)

	return docCmd
}

func (a *app) docAddCommand() *cobra.Command {
	var (
		displayName string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "add <document-path> <folder-path>",
		Short: "Index a saved page in a folder",
		Long: `Index a saved page in a folder.

Without --name the display name is read from the page's <title>.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &vfsSvc.InsertDocumentRequest{
				DocumentPath: args[0],
				FolderPath:   args[1],
				DisplayName:  displayName,
			}
			if cmd.Flags().Changed("tag") {
				req.Tags = tags
			}

			doc, err := a.services.Documents.InsertDocument(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n", doc.DisplayName, doc.FolderPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&displayName, "name", "", "Display name")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func (a *app) docRemoveCommand() *cobra.Command {
	var (
		folderPath string
		purge      bool
	)

	cmd := &cobra.Command{
		Use:   "rm <document-path>",
		Short: "Remove a document from the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if folderPath == "" {
				doc, err := a.services.Documents.GetDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				folderPath = doc.FolderPath
			}

			ref, err := a.services.Documents.DeleteDocument(cmd.Context(), &vfsSvc.DeleteDocumentRequest{
				DocumentPath: args[0],
				FolderPath:   folderPath,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", ref.DocumentPath)
			if purge {
				if err := a.services.Content.Remove(ref.DocumentPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "purged %s\n", ref.DocumentPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&folderPath, "folder", "", "Folder holding the document (default: wherever it is indexed)")
	cmd.Flags().BoolVar(&purge, "purge", false, "Also delete the content directory")
	return cmd
}

func (a *app) docExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <document-path>",
		Short: "Render a saved page as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.services.Documents.GetDocument(cmd.Context(), args[0]); err != nil {
				return err
			}

			markdown, err := a.services.Content.ExportMarkdown(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), markdown)
				return nil
			}
			if err := os.WriteFile(output, []byte(markdown), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "Write to file instead of stdout")
	return cmd
}
