// cmd/client/cmd/vault/scan.go
package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/internal/app/client/scan"
	"credvault/internal/domain/credential"
)

var ScanCmd = &cobra.Command{
	Use:   "scan <payload>",
	Short: "Import a credential from a scanned code",
	Long: `Turns a scanned QR payload into a vault entry.

Recognized payloads are vault credential links, otpauth TOTP URIs and
plain web addresses; anything else is stored as raw text with a generic
label. Scanning never fails, it only degrades.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, view, err := openVault(cmd)
		if err != nil {
			return err
		}

		draft := scan.Parse(args[0])

		fmt.Printf("Detected: %s\n", draft.Kind)
		fmt.Printf("  Label:    %s\n", draft.Label)
		if draft.Username != "" {
			fmt.Printf("  Username: %s\n", draft.Username)
		}
		if draft.URL != "" {
			fmt.Printf("  URL:      %s\n", draft.URL)
		}

		fmt.Print("Save this entry? [Y/n]: ")
		if answer := readLine(); answer == "n" || answer == "N" {
			fmt.Println("Cancelled.")
			return nil
		}

		rec := credential.New(draft.Label, draft.Username, draft.Secret, draft.Notes)
		if err := view.Add(cmd.Context(), rec); err != nil {
			return fmt.Errorf("save scanned entry: %w", err)
		}

		fmt.Println("Credential saved.")
		return nil
	},
}
