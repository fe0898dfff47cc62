// Command importlistings copies the configured dataset into a SQLite file,
// which the server can then read with DATASET=sqlite:<path>.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"carmarket/internal/config"
	"carmarket/internal/dataset"
	"carmarket/internal/domain"
	"carmarket/internal/filter"
	"carmarket/internal/log"
	"carmarket/internal/repos"
)

func main() {
	cfg := config.Load()
	from := flag.String("from", cfg.Dataset, "dataset location to import (file, http(s)://, s3://)")
	dsn := flag.String("db", cfg.DBDSN, "SQLite database to write")
	flag.Parse()

	if err := run(context.Background(), cfg, *from, *dsn); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, from, dsn string) error {
	if strings.HasPrefix(from, "sqlite:") {
		return fmt.Errorf("refusing to import from %s: source is already SQLite", from)
	}
	cfg.Dataset = from
	src, err := dataset.Open(cfg)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Loading listings from " + from)
	listings, err := src.Load(ctx)
	if err != nil {
		spinner.Fail("load failed")
		return err
	}
	if err := checkIDs(listings); err != nil {
		spinner.Fail("invalid dataset")
		return err
	}
	spinner.Success(fmt.Sprintf("Loaded %d listings", len(listings)))

	db, err := repos.OpenDB(dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", dsn, err)
	}
	defer db.Close()

	repo := repos.NewListingRepo(db)
	if err := repo.ReplaceAll(ctx, listings); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	log.Audit(nil, "listings.import", map[string]any{"from": from, "db": dsn, "count": len(listings)})

	f := filter.FacetsOf(listings)
	_ = pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Database", "Listings", "Makes", "Fuels", "Gearboxes"},
		{dsn, fmt.Sprint(len(listings)), fmt.Sprint(len(f.Makes)), fmt.Sprint(len(f.Fuels)), fmt.Sprint(len(f.Gearboxes))},
	}).Render()
	pterm.Success.Printfln("Imported into %s", dsn)
	return nil
}

// checkIDs rejects datasets whose ids are not unique positive integers.
func checkIDs(listings []domain.Listing) error {
	seen := make(map[int]bool, len(listings))
	for i, l := range listings {
		if l.ID <= 0 {
			return fmt.Errorf("listing #%d has invalid id %d", i, l.ID)
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate listing id %d", l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}
