package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/quoter/internal/app"
	"github.com/five82/quoter/internal/config"
	"github.com/five82/quoter/internal/mockapi"
	"github.com/five82/quoter/internal/quotes"
	"github.com/five82/quoter/internal/syncer"
	"github.com/five82/quoter/internal/transfer"
)

var errSyncDisabled = errors.New("sync is disabled (set sync_url in the config)")

func newRootCmd() *cobra.Command {
	opts := &app.Options{}

	root := &cobra.Command{
		Use:           "quoter",
		Short:         "Random quotes in the terminal, synced with a shared endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/quoter/config.toml)")
	f.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/quoter/prefs.toml)")
	f.IntVar(&opts.PollEvery, "poll", 0, "sync interval in seconds (overrides poll_seconds)")

	root.AddCommand(
		newTUICmd(opts),
		newRandomCmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newCategoriesCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newSyncCmd(opts),
		newConflictsCmd(opts),
		newResolveCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// withEnv opens the shared environment for one command invocation.
func withEnv(opts *app.Options, fn func(env *app.Env) error) error {
	env, err := app.Open(*opts)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

func newTUICmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive viewer (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}
}

func newRandomCmd(opts *app.Options) *cobra.Command {
	var category, where string
	cmd := &cobra.Command{
		Use:     "random",
		Aliases: []string{"r"},
		Short:   "Print one random quote",
		Example: "  quoter random --category Motivation\n  quoter random --where 'length < 40'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				list, err := selectQuotes(env.Library.Quotes(), category, where)
				if err != nil {
					return err
				}
				_, text := quotes.NewPicker(nil).Show(list, quotes.AllCategories)
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", quotes.AllCategories, "category to pick from")
	cmd.Flags().StringVarP(&where, "where", "w", "", "filter expression over id, text, category, length")
	return cmd
}

func newAddCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "add <text> <category>",
		Short:   "Add a quote",
		Example: "  quoter add \"Creativity is intelligence having fun.\" Creativity",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := quotes.New(args[0], args[1])
			if err != nil {
				return err
			}
			return withEnv(opts, func(env *app.Env) error {
				if err := env.Library.Add(q); err != nil {
					return err
				}
				env.Logger.Info("quote added", slog.String("id", q.ID), slog.String("category", q.Category))
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", q.ID)
				return nil
			})
		},
	}
}

func newListCmd(opts *app.Options) *cobra.Command {
	var category, where string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quotes",
		Example: "  quoter list --where 'category == \"Motivation\" && length > 50'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				list, err := selectQuotes(env.Library.Quotes(), category, where)
				if err != nil {
					return err
				}
				printQuotes(cmd.OutOrStdout(), list)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", quotes.AllCategories, "only list this category")
	cmd.Flags().StringVarP(&where, "where", "w", "", "filter expression over id, text, category, length")
	return cmd
}

func newCategoriesCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with quote counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				list := env.Library.Quotes()
				for _, c := range quotes.Categories(list) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", c, len(quotes.Filter(list, c)))
				}
				return nil
			})
		},
	}
}

func newImportCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import quotes from a .json or .html file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			res, err := transfer.ImportFile(path)
			if err != nil {
				return err
			}
			return withEnv(opts, func(env *app.Env) error {
				added, replaced, err := env.Library.Import(res.Quotes)
				if err != nil {
					return err
				}
				env.Logger.Info("quotes imported",
					slog.String("path", path),
					slog.Int("added", added),
					slog.Int("replaced", replaced),
					slog.Int("skipped", res.Skipped))
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d added, %d updated, %d skipped\n", added, replaced, res.Skipped)
				return nil
			})
		},
	}
}

func newExportCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export quotes to a .json or .xlsx file",
		Long:  "Export quotes to a .json or .xlsx file. Without a file the export goes to quotes.json in the data directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, func(env *app.Env) error {
				path := env.Config.ExportPath(transfer.DefaultExportName)
				if len(args) == 1 {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return err
					}
					path = expanded
				}
				list := env.Library.Quotes()
				if err := transfer.ExportFile(path, list); err != nil {
					return err
				}
				env.Logger.Info("quotes exported", slog.String("path", path), slog.Int("count", len(list)))
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d quotes to %s\n", len(list), path)
				return nil
			})
		},
	}
}

func newSyncCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Aliases: []string{"s"},
		Short:   "Run one sync pass against the configured endpoint",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				if env.Syncer == nil {
					return errSyncDisabled
				}
				res, err := env.Syncer.Sync(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Synced: %d added, %d updated, %d pushed, %d conflicts\n",
					res.Added, res.Updated, res.Pushed, res.Conflicts)
				return nil
			})
		},
	}
}

func newConflictsCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "Sync and list quotes whose local and server copies differ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				if env.Syncer == nil {
					return errSyncDisabled
				}
				if _, err := env.Syncer.Sync(cmd.Context()); err != nil {
					return err
				}
				printConflicts(cmd.OutOrStdout(), env.Syncer.Conflicts())
				return nil
			})
		},
	}
}

func newResolveCmd(opts *app.Options) *cobra.Command {
	var all bool
	var keep string
	cmd := &cobra.Command{
		Use:     "resolve [id]",
		Short:   "Sync and resolve a conflict by keeping the server or local copy",
		Example: "  quoter resolve 1f0c2a9e-5d1b-4c3e-9a0f-2b7d8e6c4a11 --keep local\n  quoter resolve --all --keep server",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("pass either a quote id or --all")
			}
			res, err := syncer.ParseResolution(keep)
			if err != nil {
				return err
			}
			return withEnv(opts, func(env *app.Env) error {
				if env.Syncer == nil {
					return errSyncDisabled
				}
				ctx := cmd.Context()
				if _, err := env.Syncer.Sync(ctx); err != nil {
					return err
				}
				if all {
					n, err := env.Syncer.ResolveAll(ctx, res)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d conflicts (%s)\n", n, res)
					return nil
				}
				if err := env.Syncer.Resolve(ctx, args[0], res); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Resolved %s (%s)\n", args[0], res)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "resolve every queued conflict")
	cmd.Flags().StringVarP(&keep, "keep", "k", "server", "copy to keep: server or local")
	return cmd
}

func newServeCmd(opts *app.Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local in-memory sync endpoint for testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			srv := mockapi.New(nil, mockapi.WithLogger(logger))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default serve_addr from config)")
	return cmd
}

// selectQuotes narrows list by category then by a where expression.
func selectQuotes(list []quotes.Quote, category, where string) ([]quotes.Quote, error) {
	pred, err := quotes.CompileWhere(where)
	if err != nil {
		return nil, err
	}
	return quotes.Select(quotes.Filter(list, category), pred)
}

func printQuotes(w io.Writer, list []quotes.Quote) {
	for _, q := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", q.ID, q.Category, q.Text)
	}
}

func printConflicts(w io.Writer, list []syncer.Conflict) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No conflicts")
		return
	}
	for _, c := range list {
		fmt.Fprintf(w, "%s\n  local:  %s\n  server: %s\n", c.ID, quotes.Format(c.Local), quotes.Format(c.Server))
	}
}
