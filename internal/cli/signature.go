package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var signatureCmd = &cobra.Command{
	Use:   "signature",
	Short: "Manage signature images",
}

var signatureUploadCmd = &cobra.Command{
	Use:   "upload <date> <png-file>",
	Short: "Upload a signature image for a work day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		userID, err := e.requireUser()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}

		url, err := e.client.UploadSignature(cmd.Context(), userID, args[0], data)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	signatureCmd.AddCommand(signatureUploadCmd)
}
