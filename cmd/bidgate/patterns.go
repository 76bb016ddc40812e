package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sosillc/bidgate/internal/patterns"
)

func patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Validate and list the knock-out pattern pack",
		Long: `Loads the configured pattern pack (or the built-in default) and lists
each family with its compiled pattern count. Patterns that fail to compile are
reported during loading.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			pack, err := patterns.LoadOrDefault(viper.GetString("patterns_file"))
			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("%d pattern families", pack.Len())))
			for _, name := range pack.Families() {
				family := pack.Family(name)
				category := "-"
				if id, ok := patterns.FamilyCategories[name]; ok {
					category = fmt.Sprintf("%d", id)
				}
				fmt.Printf("  %-28s category %-3s %3d patterns\n", name, category, family.PatternCount())
			}
			return nil
		},
	}
}
