package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"scrapbook/internal/config"
	"scrapbook/internal/domain"
	serviceVfs "scrapbook/internal/service/vfs"
)

// app holds the state shared by every command of one invocation
type app struct {
	home     string
	verbose  bool
	cfg      *config.Config
	logger   *slog.Logger
	storage  *serviceVfs.Storage
	services *serviceVfs.Services
	logFile  io.Closer
}

// NewRootCommand builds the scrapbook command tree. Output goes to the
// command's configured writers so tests can capture it.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "scrapbook",
		Short: "Organize saved web pages in virtual folders",
		Long: `scrapbook manages the virtual folder index of a WebScrapBook home.

Every command loads the index, applies one change and writes it back.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors:      true,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	rootCmd.PersistentFlags().StringVar(&a.home, "home", "", "Scrapbook home directory (default $SCRAPBOOK_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(
		a.mountCommand(),
		a.treeCommand(),
		a.lsCommand(),
		a.folderCommand(),
		a.documentCommand(),
		a.searchCommand(),
	)

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
// Refused operations print "operation denied: <reason>".
func Execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), describeError(err))
		return 1
	}
	return 0
}

// describeError formats err for the terminal
func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation):
		return "operation denied: " + err.Error()
	default:
		return "error: " + err.Error()
	}
}

// setup loads configuration and opens the index for the command
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.Load()
	if a.home != "" {
		a.cfg.SetHome(a.home)
	}
	a.cfg.Debug = a.verbose

	out := io.Discard
	if a.verbose {
		out = cmd.ErrOrStderr()
	}
	if a.cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(a.cfg.LogDir, "scrapbook", a.cfg.LogMaxFiles)
		if err != nil {
			return err
		}
		a.logFile = logFile
		out = io.MultiWriter(out, logFile)
	}
	a.logger = config.NewLogger(a.cfg, out)

	storage, err := serviceVfs.SetupStorage(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.storage = storage
	a.services = serviceVfs.SetupServices(storage, a.cfg, a.logger)

	// Every command except mount needs an existing index
	if cmd.Name() != "mount" {
		if _, err := a.storage.Store.Init(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}

// teardown releases what setup opened
func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.storage != nil {
		a.storage.Close()
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
