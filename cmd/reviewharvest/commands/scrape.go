package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"reviewharvest/lib/configutil"
	"reviewharvest/lib/pageview"
	"reviewharvest/lib/reviewstore"
	"reviewharvest/lib/scrapers/reviews"
	"reviewharvest/lib/serviceutil"
	"reviewharvest/lib/sqliteutil"
)

var scrapeFlags struct {
	company    string
	source     string
	startDate  string
	endDate    string
	maxReviews int
	output     string
	db         string
	headless   bool
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVar(&scrapeFlags.company, "company", "", "Company to collect reviews for.")
	f.StringVar(&scrapeFlags.source, "source", string(reviews.SourceG2), "Review site to collect from.")
	f.StringVar(&scrapeFlags.startDate, "start-date", "", "Keep reviews on or after this date (YYYY-MM-DD).")
	f.StringVar(&scrapeFlags.endDate, "end-date", "", "Keep reviews on or before this date (YYYY-MM-DD).")
	f.IntVar(&scrapeFlags.maxReviews, "max-reviews", 50, "Stop after collecting this many reviews, 0 for no limit.")
	f.StringVar(&scrapeFlags.output, "output", "", "JSON output path, defaults to a timestamped file.")
	f.StringVar(&scrapeFlags.db, "db", "", "Also write results to this sqlite database.")
	f.BoolVar(&scrapeFlags.headless, "headless", true, "Run the browser headless.")
	scrapeCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(scrapeCmd)
}

// Config carries defaults the flags fall back to.
type Config struct {
	OutputDir string `json:"output_dir"`
	Database  string `json:"database"`
}

// scrapeOutput is the shape of the JSON file written after a run.
type scrapeOutput struct {
	Company     string                 `json:"company"`
	Source      reviews.Source         `json:"source"`
	ScrapedAt   string                 `json:"scraped_at"`
	ReviewCount int                    `json:"review_count"`
	Reviews     []reviews.ReviewRecord `json:"reviews"`
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --company <name> [--source g2]",
	Short: "Collects reviews for a company and writes them to JSON, optionally sqlite.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		company, err := validateCompany(scrapeFlags.company)
		if err != nil {
			serviceutil.Fatal("invalid company", err)
		}
		source, err := reviews.ParseSource(scrapeFlags.source)
		if err != nil {
			serviceutil.Fatal("invalid source", err)
		}

		var start, end time.Time
		filterDates := scrapeFlags.startDate != "" || scrapeFlags.endDate != ""
		if filterDates {
			start, end, err = validateDateRange(scrapeFlags.startDate, scrapeFlags.endDate)
			if err != nil {
				serviceutil.Fatal("invalid date range", err)
			}
		}

		session, err := pageview.NewSession(ctx, pageview.SessionOptions{
			Headless: scrapeFlags.headless,
		})
		if err != nil {
			serviceutil.Fatal("failed to start browser session", err)
		}
		defer session.Close()

		resolver, err := reviews.NewResolver()
		if err != nil {
			serviceutil.Fatal("failed to initialize resolver", err)
		}

		crawler := &reviews.Crawler{
			View:     session,
			Registry: reviews.DefaultRegistry(),
			Pacer:    reviews.NewRandomPacer(),
			Resolver: resolver,
		}

		startedAt := time.Now()
		records, err := crawler.Crawl(ctx, company, source, scrapeFlags.maxReviews)
		if err != nil {
			serviceutil.Fatal("crawl failed", err)
		}
		if filterDates {
			records = reviews.FilterByDateRange(records, start, end)
		}

		out := scrapeOutput{
			Company:     company,
			Source:      source,
			ScrapedAt:   startedAt.Format(time.RFC3339),
			ReviewCount: len(records),
			Reviews:     records,
		}
		path := scrapeFlags.output
		if path == "" {
			name := fmt.Sprintf("%s_%s_reviews_%s.json",
				source, company, startedAt.Format("20060102_150405"))
			path = filepath.Join(cfg.OutputDir, name)
		}
		if err := writeJSON(path, out); err != nil {
			serviceutil.Fatal("failed to write output", err)
		}
		fmt.Printf("wrote %d reviews to %s\n", len(records), path)

		dbPath := scrapeFlags.db
		if dbPath == "" {
			dbPath = cfg.Database
		}
		if dbPath != "" {
			db, err := sqliteutil.OpenDB(reviewstore.Schema, dbPath)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer db.Close()
			store := reviewstore.NewStore(db)
			crawlId, err := store.Push(ctx, company, source, startedAt, records)
			if err != nil {
				serviceutil.Fatal("failed to store results", err)
			}
			fmt.Printf("stored crawl %d in %s\n", crawlId, dbPath)
		}
	},
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
