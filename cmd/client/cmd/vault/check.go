// cmd/client/cmd/vault/check.go
package vault

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"credvault/cmd/client/cmd/types"
	"credvault/internal/app/client"
)

var checkID string

var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a password against known breaches",
	Long: `Checks a password against the breach database of the password
service. With --id the check runs against a stored credential's secret;
otherwise the password is typed in.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var password string

		if checkID != "" {
			_, view, err := openVault(cmd)
			if err != nil {
				return err
			}
			rec, ok := view.Get(checkID)
			if !ok {
				return fmt.Errorf("no credential with id %s", checkID)
			}
			password = rec.Secret
		} else {
			fmt.Print("Password to check: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = string(raw)
		}

		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application not initialized")
		}

		result, err := app.PassAPI().CheckBreach(cmd.Context(), password)
		if err != nil {
			return err
		}

		if result.Breached {
			color.Red("Found in %d known breaches. Change this password.", result.Count)
		} else {
			color.Green("Not found in known breaches.")
		}
		return nil
	},
}

func init() {
	CheckCmd.Flags().StringVar(&checkID, "id", "", "check the secret of a stored credential")
}
