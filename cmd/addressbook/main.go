package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/config"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/handlers"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/repl"
)

// saveGrace bounds the final save, which still runs after an interrupt.
const saveGrace = 5 * time.Second

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "addressbook",
	Short: "Personal contact directory with birthday reminders",
	Long: `addressbook keeps contacts (name, phone numbers, optional birthday) and
lists whose birthday falls within the next days.

Run without arguments to start an interactive session. Commands:
  hello
  add <name> <phone>             change <name> <old> <new>
  phone <name>                   remove-phone <name> <phone>
  all                            delete <name>
  add-birthday <name> DD.MM.YYYY show-birthday <name>
  birthdays                      save
  close | exit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if logger, err = newLogger(cfg.Log, verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBook(cmd.Context(), func(ctx context.Context, book *addressbook.Book, save func(context.Context) error) error {
			return repl.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), newMux(book, save), logger)
		})
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Run a single command and save the result",
	Example: `  addressbook exec add Alice 0123456789
  addressbook exec birthdays`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBook(cmd.Context(), func(ctx context.Context, book *addressbook.Book, save func(context.Context) error) error {
			line := strings.Join(args, " ")
			if command, _ := handlers.ParseInput(line); handlers.IsExit(command) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), repl.Goodbye)
				return nil
			}

			reply, err := newMux(book, save).Dispatch(ctx, line)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(execCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

func newMux(book *addressbook.Book, save func(context.Context) error) *handlers.Mux {
	return handlers.New(book, handlers.Options{
		Window: cfg.Birthdays.Window,
		Save:   save,
	})
}

// withBook loads the configured store, runs fn against its Book and saves the
// Book afterwards. The book is not saved if fn fails.
func withBook(
	ctx context.Context,
	fn func(ctx context.Context, book *addressbook.Book, save func(context.Context) error) error,
) error {
	store, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Storage.Driver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()

	book, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading address book: %w", err)
	}
	logger.Info("address book loaded", zap.String("driver", cfg.Storage.Driver), zap.Int("contacts", book.Len()))

	save := func(ctx context.Context) error { return store.Save(ctx, book) }
	if err := fn(ctx, book, save); err != nil {
		return err
	}

	// ctx is cancelled on interrupt, but the session's changes still need saving
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveGrace)
	defer cancel()
	if err := save(saveCtx); err != nil {
		return fmt.Errorf("saving address book: %w", err)
	}
	logger.Info("address book saved", zap.Int("contacts", book.Len()))
	return nil
}
