// cmd/client/cmd/vault/generate.go
package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/cmd/client/cmd/types"
	"credvault/internal/app/client"
)

var generateLength int

var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password",
	Long:  `Asks the password service for a random password and prints it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application not initialized")
		}

		password, err := app.PassAPI().Generate(cmd.Context(), generateLength)
		if err != nil {
			return err
		}

		fmt.Println(password)
		return nil
	},
}

func init() {
	GenerateCmd.Flags().IntVarP(&generateLength, "length", "l", 0, "password length (service default when omitted)")
}
