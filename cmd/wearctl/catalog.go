package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the garment types a user's wardrobe allows per slot",
	RunE:  runCatalog,
}

var catalogUser string

func init() {
	catalogCmd.Flags().StringVarP(&catalogUser, "user", "u", "", "User id (required)")
	markRequired(catalogCmd, "user")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	svc, err := newStylist()
	if err != nil {
		return err
	}
	catalog, err := svc.Catalog(cmd.Context(), catalogUser)
	if err != nil {
		res := stylist.ErrorResultFrom(err)
		return fmt.Errorf("%s: %s", res.Code, res.Message)
	}
	return writeJSON(cmd.OutOrStdout(), catalog)
}
