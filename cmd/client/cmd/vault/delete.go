// cmd/client/cmd/vault/delete.go
package vault

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteForce bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a credential",
	Long: `Deletes a credential from the vault. Deleting an entry that is
already gone succeeds silently.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, view, err := openVault(cmd)
		if err != nil {
			return err
		}

		rec, err := view.BeginDialog(args[0])
		if err != nil {
			return err
		}

		if !deleteForce {
			fmt.Printf("Delete %q? [y/N]: ", rec.Label)
			answer := readLine()
			if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
				view.DismissDialog()
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := view.ConfirmDelete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete credential: %w", err)
		}

		fmt.Println("Credential deleted.")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}
