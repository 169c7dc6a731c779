package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Print the feature vector for a temperature and outfit",
	Long:  "Encodes a candidate the same way the ranking model sees it. Useful for checking a model artifact against the current schema.",
	RunE:  runFeatures,
}

var (
	featuresTemp      float64
	featuresTop       string
	featuresBottom    string
	featuresOuterwear string
)

type featuresOutput struct {
	Schema    string            `json:"schema"`
	Dimension int               `json:"dimension"`
	Candidate stylist.Candidate `json:"candidate"`
	Vector    []float32         `json:"vector"`
}

func init() {
	featuresCmd.Flags().Float64VarP(&featuresTemp, "temp", "t", 0, "Average temperature in °C (required)")
	featuresCmd.Flags().StringVar(&featuresTop, "top", "", "Top garment type (required)")
	featuresCmd.Flags().StringVar(&featuresBottom, "bottom", "", "Bottom garment type (required)")
	featuresCmd.Flags().StringVar(&featuresOuterwear, "outerwear", wardrobe.NoOuterwear, "Outerwear garment type")
	markRequired(featuresCmd, "temp", "top", "bottom")

	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, _ []string) error {
	candidate := stylist.Candidate{
		Top:       strings.ToLower(strings.TrimSpace(featuresTop)),
		Bottom:    strings.ToLower(strings.TrimSpace(featuresBottom)),
		Outerwear: strings.ToLower(strings.TrimSpace(featuresOuterwear)),
	}
	vec := stylist.Encode(forecast.Day{AvgTemp: featuresTemp}, candidate)
	return writeJSON(cmd.OutOrStdout(), featuresOutput{
		Schema:    stylist.SchemaVersion,
		Dimension: len(vec),
		Candidate: candidate,
		Vector:    vec,
	})
}
