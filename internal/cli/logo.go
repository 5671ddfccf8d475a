package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var logoCmd = &cobra.Command{
	Use:   "logo",
	Short: "Manage report header logos",
}

var logoUploadCmd = &cobra.Command{
	Use:   "upload <png-file>",
	Short: "Upload a logo for report headers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		if _, err := e.requireUser(); err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		url, err := e.client.UploadLogo(cmd.Context(), name, data)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	logoCmd.AddCommand(logoUploadCmd)
}
