package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrapbook/internal/domain/models/vfs"
)

func (a *app) searchCommand() *cobra.Command {
	var (
		mode       string
		scope      string
		folder     string
		dateFilter string
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find documents by title or tag",
		Example: `  scrapbook search news --mode tag
  scrapbook search recipe --scope current-folder --folder root/Cooking --date this-month`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.services.Search.Search(cmd.Context(), &vfs.SearchOptions{
				Term:          args[0],
				Mode:          vfs.SearchMode(mode),
				Scope:         vfs.SearchScope(scope),
				CurrentFolder: folder,
				DateFilter:    vfs.DateFilter(dateFilter),
			})
			if err != nil {
				return err
			}

			printDocuments(cmd.OutOrStdout(), results.Documents)
			if len(results.Documents) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no documents found")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(vfs.DefaultSearchMode), "title or tag")
	cmd.Flags().StringVar(&scope, "scope", string(vfs.DefaultSearchScope), "all-documents, current-folder or all-subfolders")
	cmd.Flags().StringVar(&folder, "folder", vfs.RootName, "Folder the scope is relative to")
	cmd.Flags().StringVar(&dateFilter, "date", string(vfs.DefaultDateFilter), "all-time, today, this-week, this-month or this-year")
	return cmd
}
