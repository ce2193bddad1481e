package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vigilstack/vigil/core/model"
	"github.com/vigilstack/vigil/core/prediction"
	"github.com/vigilstack/vigil/infra/logger"
)

var featuresFlag string

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run a one-shot health assessment with the heuristic predictor",
	RunE:  assess,
}

func init() {
	assessCmd.Flags().StringVarP(&featuresFlag, "features", "f", "",
		"comma-separated list of 12 normalized feature values")
	rootCmd.AddCommand(assessCmd)
}

func assess(cmd *cobra.Command, args []string) error {
	if featuresFlag == "" {
		return fmt.Errorf("--features is required")
	}
	parts := strings.Split(featuresFlag, ",")
	features := make(model.FeatureVector, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("parse feature %q: %w", p, err)
		}
		features = append(features, v)
	}

	assessor := prediction.NewAssessor(prediction.HeuristicPredictor{}, logger.New("assess-command"), 0, nil)
	result, err := assessor.Assess(context.Background(), features)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
