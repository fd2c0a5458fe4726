package command

import (
	"errors"
	"fmt"
	"os"

	"bookswap/internal/ingestion/catalog"
	"bookswap/internal/microservices/http-api/repository"
	"bookswap/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-load data",
}

// importBooksCmd loads a CSV of books onto one user's shelf
var importBooksCmd = &cobra.Command{
	Use:   "books",
	Short: "Import books from a CSV file",
	Long: `Import books from a CSV file with a header row.

Required columns: title, author, description
Optional columns: isbn, image_url

Rows whose isbn already exists are counted as duplicates and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		owner, _ := cmd.Flags().GetString("owner")
		workers, _ := cmd.Flags().GetInt("workers")
		rps, _ := cmd.Flags().GetFloat64("rate")

		if path == "" || owner == "" {
			return errors.New("--file and --owner are required")
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		records, err := catalog.ParseCSV(f)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		return withDB(cmd, func(db *gorm.DB) error {
			user, err := repository.NewUserRepository(db).FindByUsername(cmd.Context(), owner)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("no user named %q", owner)
				}
				return err
			}

			books := service.NewBookService(repository.NewBookRepository(db))
			report := catalog.NewImporter(books, workers, rps).Import(cmd.Context(), user.ID, records)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Imported %d books for %s (%d duplicates, %d failed)\n",
				report.Created, user.Username, report.Duplicates, len(report.Failed))
			for _, rowErr := range report.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", rowErr)
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d rows failed", len(report.Failed))
			}
			return nil
		})
	},
}

func init() {
	importBooksCmd.Flags().StringP("file", "f", "", "CSV file to import (required)")
	importBooksCmd.Flags().StringP("owner", "o", "", "username that will own the books (required)")
	importBooksCmd.Flags().Int("workers", 4, "concurrent inserts")
	importBooksCmd.Flags().Float64("rate", 0, "max inserts per second, 0 for unlimited")

	importCmd.AddCommand(importBooksCmd)
	rootCmd.AddCommand(importCmd)
}
