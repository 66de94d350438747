// AutoInfra CLI - natural language to infrastructure artifacts.
//
// Usage:
//   autoinfra serve [--port 8000] [--static-dir static]
//   autoinfra generate "nodejs app with mongodb and a load balancer"
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/autoinfra/autoinfra/api"
	"github.com/autoinfra/autoinfra/internal/config"
	"github.com/autoinfra/autoinfra/internal/intent"
	"github.com/autoinfra/autoinfra/internal/pipeline"
	"github.com/autoinfra/autoinfra/internal/pricing"
	"github.com/autoinfra/autoinfra/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Best effort: a missing .env is normal outside development.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "autoinfra",
		Usage:   "Convert infrastructure descriptions into Terraform, diagrams, costs, and security posture",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   ".",
				Usage:   "Directory searched for .autoinfra.yaml",
				EnvVars: []string{"AUTOINFRA_CONFIG_DIR"},
			},
			&cli.StringFlag{
				Name:    "pricing-file",
				Usage:   "YAML price-table overrides",
				EnvVars: []string{"AUTOINFRA_PRICING_FILE"},
			},
		},

		Commands: []*cli.Command{
			serveCommand(),
			generateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildPipeline(c *cli.Context) (*pipeline.Pipeline, config.Config, error) {
	logger := platform.InitLogger()

	cfg, err := config.Load(c.String("config-dir"))
	if err != nil {
		return nil, cfg, err
	}
	if f := c.String("pricing-file"); f != "" {
		cfg.PricingFile = f
	}

	table := pricing.Default()
	if cfg.PricingFile != "" {
		table, err = pricing.Load(cfg.PricingFile)
		if err != nil {
			return nil, cfg, err
		}
	}

	extractor := intent.NewExtractor(intent.ExtractorOptions{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Logger:  logger,
	})

	p := pipeline.New(pipeline.Options{
		TemplateDir: cfg.TemplateDir,
		Pricing:     table,
		Extractor:   extractor,
		Logger:      logger,
	})
	return p, cfg, nil
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
				EnvVars: []string{"AUTOINFRA_PORT"},
			},
			&cli.StringFlag{
				Name:    "static-dir",
				Usage:   "Directory with the frontend assets (overrides config)",
				EnvVars: []string{"AUTOINFRA_STATIC_DIR"},
			},
		},
		Action: func(c *cli.Context) error {
			p, cfg, err := buildPipeline(c)
			if err != nil {
				return err
			}

			serverCfg := api.DefaultConfig()
			serverCfg.Port = cfg.Port
			serverCfg.StaticDir = cfg.StaticDir
			serverCfg.CORSOrigins = cfg.CORSOrigins
			serverCfg.DebugDumpPath = cfg.DebugDump
			if c.Int("port") != 0 {
				serverCfg.Port = c.Int("port")
			}
			if c.String("static-dir") != "" {
				serverCfg.StaticDir = c.String("static-dir")
			}

			srv := api.NewServer(p, serverCfg, nil)
			return srv.StartWithGracefulShutdown()
		},
	}
}

// =============================================================================
// GENERATE COMMAND
// =============================================================================

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Run the pipeline once and print the JSON response",
		ArgsUsage: "<description>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Emit compact JSON instead of indented",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("a description argument is required")
			}

			p, _, err := buildPipeline(c)
			if err != nil {
				return err
			}

			resp := p.Generate(c.Context, c.Args().First())

			enc := json.NewEncoder(os.Stdout)
			if !c.Bool("compact") {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(resp)
		},
	}
}
