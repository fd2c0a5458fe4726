package command

import (
	"fmt"
	"io"
	"text/tabwriter"

	"bookswap/internal/microservices/http-api/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Inspect stored records",
}

var (
	listLimit  int
	listOffset int
	listSearch string
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func footer(w io.Writer, shown int, total int64) {
	fmt.Fprintf(w, "\n%d of %d\n", shown, total)
}

// withDB runs fn against an open connection
func withDB(cmd *cobra.Command, fn func(db *gorm.DB) error) error {
	db, _, closeDB, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(db)
}

var listBooksCmd = &cobra.Command{
	Use:   "books",
	Short: "List books",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		author, _ := cmd.Flags().GetString("author")

		return withDB(cmd, func(db *gorm.DB) error {
			filter := repository.BookFilter{Search: listSearch, OwnerID: owner, Author: author}
			books, total, err := repository.NewBookRepository(db).List(cmd.Context(), filter, listOffset, listLimit)
			if err != nil {
				return err
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tISBN\tOWNER")
			for _, b := range books {
				isbn := ""
				if b.ISBN != nil {
					isbn = *b.ISBN
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, isbn, b.Owner.Username)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			footer(cmd.OutOrStdout(), len(books), total)
			return nil
		})
	},
}

var listExchangesCmd = &cobra.Command{
	Use:   "exchanges",
	Short: "List exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		participant, _ := cmd.Flags().GetString("participant")

		return withDB(cmd, func(db *gorm.DB) error {
			filter := repository.ExchangeFilter{ParticipantID: participant, Status: status, Search: listSearch}
			exchanges, total, err := repository.NewExchangeRepository(db).List(cmd.Context(), filter, listOffset, listLimit)
			if err != nil {
				return err
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tOFFERED\tREQUESTED\tSTATUS\tUPDATED")
			for _, e := range exchanges {
				fmt.Fprintf(w, "%d\t%s (%s)\t%s (%s)\t%s\t%s\n",
					e.ID,
					e.OfferedBook.Title, e.OfferedBook.Owner.Username,
					e.RequestedBook.Title, e.RequestedBook.Owner.Username,
					e.Status, e.UpdatedAt.Format("2006-01-02 15:04"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			footer(cmd.OutOrStdout(), len(exchanges), total)
			return nil
		})
	},
}

var listRatingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "List ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, _ := cmd.Flags().GetInt64("book")
		score, _ := cmd.Flags().GetInt("score")

		return withDB(cmd, func(db *gorm.DB) error {
			filter := repository.RatingFilter{BookID: bookID, Score: score, Search: listSearch}
			ratings, total, err := repository.NewRatingRepository(db).List(cmd.Context(), filter, listOffset, listLimit)
			if err != nil {
				return err
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tBOOK\tUSER\tSCORE\tCOMMENT")
			for _, r := range ratings {
				comment := ""
				if r.Comment != nil {
					comment = *r.Comment
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", r.ID, r.Book.Title, r.User.Username, r.Score, comment)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			footer(cmd.OutOrStdout(), len(ratings), total)
			return nil
		})
	},
}

var listRecommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "List recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		viewer, _ := cmd.Flags().GetString("viewer")

		return withDB(cmd, func(db *gorm.DB) error {
			filter := repository.RecommendationFilter{ViewerID: viewer, Search: listSearch}
			recs, total, err := repository.NewRecommendationRepository(db).List(cmd.Context(), filter, listOffset, listLimit)
			if err != nil {
				return err
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tFROM\tBOOK\tMESSAGE")
			for _, r := range recs {
				msg := ""
				if r.Message != nil {
					msg = *r.Message
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.User.Username, r.RecommendedBook.Title, msg)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			footer(cmd.OutOrStdout(), len(recs), total)
			return nil
		})
	},
}

func init() {
	listCmd.PersistentFlags().IntVar(&listLimit, "limit", 20, "maximum rows to show")
	listCmd.PersistentFlags().IntVar(&listOffset, "offset", 0, "rows to skip")
	listCmd.PersistentFlags().StringVarP(&listSearch, "search", "s", "", "comma or space separated search terms")

	listBooksCmd.Flags().String("owner", "", "owner user id")
	listBooksCmd.Flags().String("author", "", "exact author (case-insensitive)")
	listExchangesCmd.Flags().String("status", "", "exchange status")
	listExchangesCmd.Flags().String("participant", "", "only exchanges involving this user's books")
	listRatingsCmd.Flags().Int64("book", 0, "book id")
	listRatingsCmd.Flags().Int("score", 0, "exact score")
	listRecommendationsCmd.Flags().String("viewer", "", "only recommendations visible to this user")

	listCmd.AddCommand(listBooksCmd, listExchangesCmd, listRatingsCmd, listRecommendationsCmd)
	rootCmd.AddCommand(listCmd)
}
