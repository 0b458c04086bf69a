package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	vfsSvc "scrapbook/internal/domain/services/vfs"
	serviceVfs "scrapbook/internal/service/vfs"
)

func (a *app) folderCommand() *cobra.Command {
	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage virtual folders",
	}

	var purge bool
	rmCmd := &cobra.Command{
		Use:   "rm <parent-folder-path> <name>",
		Short: "Remove a folder and everything below it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.services.Folders.DeleteFolder(cmd.Context(), &vfsSvc.DeleteFolderRequest{
				ParentFolderPath: args[0],
				Name:             args[1],
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "removed %s with %d documents\n", serviceVfs.JoinPath(args[0], args[1]), len(removed))
			if purge {
				for _, ref := range removed {
					if err := a.services.Content.Remove(ref.DocumentPath); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "purge %s: %v\n", ref.DocumentPath, err)
						continue
					}
					fmt.Fprintf(out, "purged %s\n", ref.DocumentPath)
				}
			}
			return nil
		},
	}
	rmCmd.Flags().BoolVar(&purge, "purge", false, "Also delete the content directories of removed documents")

	folderCmd.AddCommand(
		&cobra.Command{
			Use:   "add <parent-folder-path> <name>",
			Short: "Create an empty folder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				folder, err := a.services.Folders.InsertFolder(cmd.Context(), &vfsSvc.InsertFolderRequest{
					ParentFolderPath: args[0],
					Name:             args[1],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", folder.FolderPath)
				return nil
			},
		},
		rmCmd,
		&cobra.Command{
			Use:   "rename <folder-path> <new-name>",
			Short: "Rename a folder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				folder, err := a.services.Folders.RenameFolder(cmd.Context(), &vfsSvc.RenameFolderRequest{
					OldName:    serviceVfs.BaseName(args[0]),
					NewName:    args[1],
					FolderPath: args[0],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %s\n", args[0], folder.FolderPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mv <folder-path> <target-folder-path>",
			Short: "Move a folder under another folder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				folder, err := a.services.Folders.MoveFolder(cmd.Context(), &vfsSvc.MoveFolderRequest{
					FolderPath:        args[0],
					CurrentFolderPath: serviceVfs.ParentPath(args[0]),
					TargetFolderPath:  args[1],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s\n", args[0], folder.FolderPath)
				return nil
			},
		},
	)

	return folderCmd
}
