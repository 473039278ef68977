// cmd/client/cmd/vault/list.go
package vault

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credvault/internal/domain/credential"
)

var (
	searchQuery string
	showSecrets bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vault credentials",
	Long: `Lists all credentials with their secret age.

Entries younger than five months are green, entries five months or
older are yellow and entries six months or older are red. --search
marks the entries whose label contains the query.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, view, err := openVault(cmd)
		if err != nil {
			return err
		}

		if searchQuery != "" {
			matches := view.Search(searchQuery)
			fmt.Printf("Matched %d of %d entries\n\n", matches, len(view.Records()))
		}

		records := view.Records()
		if len(records) == 0 {
			fmt.Println("The vault is empty.")
			return nil
		}

		if dropped := view.Dropped(); dropped > 0 {
			fmt.Printf("Warning: %d entries could not be decrypted and were skipped\n\n", dropped)
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tLabel\tUsername\tSecret\tAge\t\n")

		for _, rec := range records {
			marker := ""
			if searchQuery != "" && view.Highlighted(rec.DocumentID) {
				marker = "* "
			}

			secret := "********"
			if showSecrets {
				secret = rec.Secret
			}

			fmt.Fprintf(w, "%s\t%s%s\t%s\t%s\t%s\t\n",
				rec.DocumentID,
				marker,
				rec.Label,
				rec.Username,
				secret,
				ageLabel(rec, now),
			)
		}
		w.Flush()

		fmt.Printf("\nTotal: %d\n", len(records))
		return nil
	},
}

func ageLabel(rec credential.Record, now time.Time) string {
	months := rec.AgeMonths(now)
	text := fmt.Sprintf("%dmo", months)

	switch rec.Freshness(now) {
	case credential.Stale:
		return color.RedString("%s (stale)", text)
	case credential.Aging:
		return color.YellowString("%s (aging)", text)
	default:
		return color.GreenString(text)
	}
}

func init() {
	ListCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "mark entries whose label contains the query")
	ListCmd.Flags().BoolVar(&showSecrets, "reveal", false, "show secrets in plaintext")
}
