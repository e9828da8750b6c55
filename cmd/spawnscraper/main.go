// Command spawnscraper builds the item spawn dataset from the wiki.
//
// Usage:
//
//	spawnscraper                      scrape (or reuse the cache), convert, write osrs-items.json
//	spawnscraper scrape               fetch every source and write the name-keyed cache
//	spawnscraper convert              resolve the cache into osrs-items.json
//	spawnscraper sources:discover     rebuild osrs-urls.txt from the spawn index page
//	spawnscraper export:xlsx          write osrs-items.json as a spreadsheet
//	spawnscraper spawn:check --x 3229 --y 3213 --id 1351 --qty 1
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spawnscraper/internal/catalog"
	"spawnscraper/internal/config"
	"spawnscraper/internal/dataset"
	"spawnscraper/internal/overrides"
	"spawnscraper/internal/pipeline"
	"spawnscraper/internal/sources"
	"spawnscraper/internal/storage"
	"spawnscraper/internal/wiki"
)

func main() {
	cfg, err := config.Load()
	must(err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := &cobra.Command{
		Use:           "spawnscraper",
		Short:         "Build the item spawn dataset from the wiki",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), cfg, logger)
		},
	}

	root.AddCommand(scrapeCmd(cfg, logger))
	root.AddCommand(convertCmd(cfg, logger))
	root.AddCommand(discoverCmd(cfg, logger))
	root.AddCommand(exportCmd(cfg))
	root.AddCommand(checkCmd(cfg))

	must(root.ExecuteContext(ctx))
}

func newService(cfg config.Config, logger *slog.Logger) *pipeline.Service {
	return pipeline.NewService(cfg, wiki.NewClient(cfg, logger), pipeline.NewNormalizer(overrides.Default()), logger)
}

func runPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	svc := newService(cfg, logger)
	if cfg.StoreEnabled {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		svc.WithRecorder(db)
	}

	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("run done items=%d locations=%d output=%s\n", res.Counts.Items, res.Counts.Locations, cfg.OutputPath)
	return nil
}

func scrapeCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetch every listed page and write the name-keyed cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sources.LoadFile(cfg.SourcesPath)
			if err != nil {
				return err
			}
			names, err := newService(cfg, logger).Scrape(cmd.Context(), records)
			if err != nil {
				return err
			}
			if err := dataset.WriteNames(cfg.CachePath, names); err != nil {
				return err
			}
			fmt.Printf("scrape done names=%d cache=%s\n", len(names), cfg.CachePath)
			return nil
		},
	}
}

func convertCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Resolve the cached names to item ids and write the output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := dataset.ReadNames(cfg.CachePath)
			if err != nil {
				return err
			}
			index, err := catalog.LoadFile(cfg.LookupPath)
			if err != nil {
				return err
			}
			ids, err := newService(cfg, logger).Convert(names, index)
			if err != nil {
				return err
			}
			if err := dataset.WriteIDs(cfg.OutputPath, ids); err != nil {
				return err
			}
			fmt.Printf("convert done items=%d output=%s\n", len(ids), cfg.OutputPath)
			return nil
		},
	}
}

func discoverCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sources:discover",
		Short: "Rebuild the source list from the wiki spawn index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := wiki.NewClient(cfg, logger)
			records, err := sources.DiscoverRemote(cmd.Context(), client, cfg.WikiBaseURL, cfg.WikiIndexPage)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no item links found on %s", cfg.WikiIndexPage)
			}
			if err := sources.WriteFile(out, records); err != nil {
				return err
			}
			fmt.Printf("discovered %d sources to %s\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", cfg.SourcesPath, "source list to write")
	return cmd
}

func exportCmd(cfg config.Config) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export:xlsx",
		Short: "Write the final dataset as a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := dataset.ReadIDs(cfg.OutputPath)
			if err != nil {
				return err
			}
			var index *catalog.Index
			hasLookup, err := dataset.Exists(cfg.LookupPath)
			if err != nil {
				return err
			}
			if hasLookup {
				if index, err = catalog.LoadFile(cfg.LookupPath); err != nil {
					return err
				}
			}
			rows, err := pipeline.ExportDatasetToXLSX(ids, index, out)
			if err != nil {
				return err
			}
			fmt.Printf("exported %d rows to %s\n", rows, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", cfg.XLSXPath, "output xlsx path")
	return cmd
}

func checkCmd(cfg config.Config) *cobra.Command {
	var x, y, id, qty int
	cmd := &cobra.Command{
		Use:   "spawn:check",
		Short: "Report whether an item stack is a natural spawn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := storage.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := refreshSpawns(db, cfg.OutputPath); err != nil {
				return err
			}

			ok, err := db.IsNaturalSpawn(x, y, id, qty)
			if err != nil {
				return err
			}
			fmt.Printf("natural=%t x=%d y=%d id=%d qty=%d\n", ok, x, y, id, qty)
			return nil
		},
	}
	cmd.Flags().IntVar(&x, "x", 0, "world x (lat)")
	cmd.Flags().IntVar(&y, "y", 0, "world y (lon)")
	cmd.Flags().IntVar(&id, "id", 0, "item id")
	cmd.Flags().IntVar(&qty, "qty", 1, "stack quantity")
	for _, name := range []string{"x", "y", "id"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// refreshSpawns reloads the store from the output file, which is the source
// of truth. A missing file leaves the store as it is.
func refreshSpawns(db *storage.DB, outputPath string) error {
	exists, err := dataset.Exists(outputPath)
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}
	if !exists {
		return nil
	}
	ids, err := dataset.ReadIDs(outputPath)
	if err != nil {
		return err
	}
	return db.ReplaceSpawns(ids)
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
