package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pageza/tomato/backend/config"
	"github.com/pageza/tomato/backend/internal/database"
	"github.com/pageza/tomato/backend/internal/logging"
	"github.com/pageza/tomato/backend/internal/service"
)

//go:embed recipes.yaml
var defaultRecipes []byte

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		file     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "seed_recipes",
		Short: "Insert sample recipes into the database",
		Long: `seed_recipes reads recipes from a YAML file, or the built-in sample set
when --file is omitted, and creates each one through the recipe service so the
same validation applies as for the API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := defaultRecipes
			if file != "" {
				var err error
				if data, err = os.ReadFile(file); err != nil {
					return err
				}
			}
			return seed(cmd.Context(), data, logLevel)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a list of recipes")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	return cmd
}

// parseRecipes decodes a YAML list of recipes
func parseRecipes(data []byte) ([]service.RecipeInput, error) {
	var recipes []service.RecipeInput
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("no recipes to seed")
	}
	return recipes, nil
}

func seed(ctx context.Context, data []byte, logLevel string) error {
	recipes, err := parseRecipes(data)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	svc := service.NewRecipeService(db, nil, log, nil)
	created := 0
	for _, input := range recipes {
		recipe, err := svc.Create(ctx, input, nil)
		if err != nil {
			log.WithError(err).WithField("title", input.Title).Warn("Skipping recipe")
			continue
		}
		created++
		log.WithField("id", recipe.ID).Infof("Created recipe %q", recipe.Title)
	}

	log.Infof("Seeded %d of %d recipes", created, len(recipes))
	return nil
}
