package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sosillc/bidgate/internal/gate"
	"github.com/sosillc/bidgate/internal/model"
	"github.com/sosillc/bidgate/internal/patterns"
)

func assessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess <opportunity.json>",
		Short: "Run the knock-out gate on a single opportunity file",
		Long: `Reads one opportunity as JSON and prints the gate decision with the
triggered categories and evidence. No LLM calls are made.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading opportunity file: %w", err)
			}

			var opp model.Opportunity
			if err := json.Unmarshal(data, &opp); err != nil {
				return fmt.Errorf("parsing opportunity file: %w", err)
			}

			pack, err := patterns.LoadOrDefault(viper.GetString("patterns_file"))
			if err != nil {
				return err
			}
			engine := gate.New(pack, gate.Config{
				DisableDeadlineCheck: viper.GetBool("disable_deadline_check"),
			})

			result := engine.Assess(&opp)
			printAssessment(&opp, result)
			return nil
		},
	}
}

func printAssessment(opp *model.Opportunity, result model.AssessmentResult) {
	fmt.Println(headerStyle.Render(opp.ID() + " " + opp.Title))
	fmt.Printf("Decision:   %s (confidence %d)\n", result.Decision, result.Confidence)
	if result.PrimaryBlocker != "" {
		fmt.Printf("Blocker:    %s (category %d)\n", result.PrimaryBlocker, result.PrimaryBlockerCategory)
	}
	if result.ContactCO {
		fmt.Printf("Action:     contact the contracting officer (%s)\n", result.ContactCOReason)
	}
	for _, categoryID := range result.TriggeredCategories {
		score := result.Scores[categoryID]
		fmt.Printf("  [%2d] %s: %s\n", categoryID, score.Category, strings.Join(score.Evidence, "; "))
	}
	if len(result.FurtherAnalysis) > 0 {
		fmt.Printf("Further analysis: %s\n", strings.Join(result.FurtherAnalysis, "; "))
	}
}
