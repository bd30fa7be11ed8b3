package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/entrhq/waypoint/pkg/browser"
	"github.com/entrhq/waypoint/pkg/config"
	"github.com/entrhq/waypoint/pkg/flow"
	"github.com/entrhq/waypoint/pkg/locators"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run one or more flow files",
	ArgsUsage: "FLOW [FLOW...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a waypoint config file",
			EnvVars: []string{"WAYPOINT_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "browser",
			Aliases: []string{"b"},
			Usage:   "Browser to launch (chromium, chrome, firefox, edge, safari)",
		},
		&cli.IntFlag{
			Name:    "parallel",
			Aliases: []string{"p"},
			Usage:   "Number of flows to run concurrently",
			Value:   1,
		},
		&cli.StringSliceFlag{
			Name:    "tag",
			Aliases: []string{"t"},
			Usage:   "Run only flows with a tag matching this glob pattern",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-tag",
			Usage: "Skip flows with a tag matching this glob pattern",
		},
	},
	Action: runFlows,
}

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Parse flow files and report problems without running them",
	ArgsUsage: "FLOW [FLOW...]",
	Action:    validateFlows,
}

func runFlows(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no flow files given")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if kind := c.String("browser"); kind != "" {
		cfg.BrowserKind = kind
	}

	filter, err := flow.NewTagFilter(c.StringSlice("tag"), c.StringSlice("exclude-tag"))
	if err != nil {
		return err
	}

	var flows []*flow.Flow
	for _, path := range c.Args().Slice() {
		f, err := flow.ParseFile(path)
		if err != nil {
			return err
		}
		if !filter.Matches(f.Tags) {
			fmt.Printf("skipping %s (tags %v)\n", f.Name, f.Tags)
			continue
		}
		flows = append(flows, f)
	}
	if len(flows) == 0 {
		return fmt.Errorf("no flows matched the tag filters")
	}

	driver := browser.NewDriver(cfg)
	store := locators.NewStore(cfg.IdentifiersDir)
	defer func() {
		driver.TeardownAll()
		_ = browser.StopEngine()
	}()

	var group errgroup.Group
	group.SetLimit(c.Int("parallel"))

	for _, f := range flows {
		group.Go(func() error {
			worker := "worker-" + uuid.NewString()[:8]

			session, err := driver.Initialize(worker, cfg.BrowserKind)
			if err != nil {
				return fmt.Errorf("flow %q: %w", f.Name, err)
			}
			defer func() { _ = driver.Teardown(worker) }()

			actions := browser.NewActions(session, cfg)
			runner := flow.NewRunner(actions, store, cfg.BaseURL)

			if err := runner.Run(f); err != nil {
				return err
			}
			fmt.Printf("flow %s passed\n", f.Name)
			return nil
		})
	}

	return group.Wait()
}

func validateFlows(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no flow files given")
	}

	failed := false
	for _, path := range c.Args().Slice() {
		f, err := flow.ParseFile(path)
		if err != nil {
			failed = true
			fmt.Printf("%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: ok (%s, %d steps)\n", path, f.Name, len(f.Steps))
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(c.String("config"))
}
