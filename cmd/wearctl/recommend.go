package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ggyyuubb/wearther/internal/bootstrap"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/infra/config"
	"github.com/ggyyuubb/wearther/pkg/logger"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend an outfit for one forecast day",
	Long:  "Runs the full pipeline for a user and location and prints the recommendation, or the error result when the pipeline stops early.",
	RunE:  runRecommend,
}

var (
	recommendUser     string
	recommendLocation string
	recommendDay      int
)

// errPipelineStopped is returned after the error result has already been printed.
var errPipelineStopped = errors.New("recommendation pipeline stopped")

func init() {
	recommendCmd.Flags().StringVarP(&recommendUser, "user", "u", "", "User id whose wardrobe is used (required)")
	recommendCmd.Flags().StringVarP(&recommendLocation, "location", "l", "", "Free-text location (required)")
	recommendCmd.Flags().IntVarP(&recommendDay, "day", "d", 0, "Forecast day index, 0 is today")
	markRequired(recommendCmd, "user", "location")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	svc, err := newStylist()
	if err != nil {
		return err
	}
	res, err := svc.Recommend(cmd.Context(), stylist.Request{
		UserID:   recommendUser,
		Location: recommendLocation,
		DayIndex: recommendDay,
	})
	if err != nil {
		if werr := writeJSON(cmd.OutOrStdout(), stylist.ErrorResultFrom(err)); werr != nil {
			return werr
		}
		return errPipelineStopped
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

func newStylist() (stylist.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewTo(os.Stderr)
	return stylist.NewService(bootstrap.ProvideStylistConfig(cfg), bootstrap.ProvideStylistDependencies(cfg, log), log), nil
}
