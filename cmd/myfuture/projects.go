package main

import (
	"fmt"
	"time"

	"myfuture/internal/api"
	"myfuture/internal/projects"
	"myfuture/internal/seed"
	"myfuture/internal/utils"
	"myfuture/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var projectsCommand = &cli.Command{
	Name:  "projects",
	Usage: "Browse and manage crowdfunding projects",
	Subcommands: []*cli.Command{
		projectsListCommand,
		projectsShowCommand,
		projectsCreateCommand,
		projectsEditCommand,
	},
}

var offlineFlag = &cli.BoolFlag{
	Name:  "offline",
	Usage: "Use the built-in sample projects instead of the API",
}

var projectsListCommand = &cli.Command{
	Name:  "list",
	Usage: "List projects, optionally filtered",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Match name, description, or category"},
		&cli.StringFlag{Name: "after", Usage: "Started on or after (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "before", Usage: "Started on or before (YYYY-MM-DD)"},
		&cli.StringSliceFlag{Name: "category", Aliases: []string{"c"}, Usage: "Restrict to these categories"},
		&cli.StringFlag{Name: "status", Value: string(projects.StatusBoth), Usage: "completed, notCompleted, or both"},
		offlineFlag,
		&cli.BoolFlag{Name: "debug", Usage: "Dump the raw project records"},
	},
	Action: func(c *cli.Context) error {
		controller, err := buildController(c)
		if err != nil {
			return err
		}

		filter, err := filterFromFlags(c)
		if err != nil {
			return err
		}

		visible := projects.Apply(controller.Projects(), filter)

		if c.Bool("debug") {
			pp.Println(visible)
			return nil
		}

		for _, p := range visible {
			printProjectLine(p)
		}
		fmt.Printf("%d of %d projects\n", len(visible), len(controller.Projects()))

		return nil
	},
}

var projectsShowCommand = &cli.Command{
	Name:      "show",
	Usage:     "Show one project in detail",
	ArgsUsage: "<project-id>",
	Flags:     []cli.Flag{offlineFlag},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("expected exactly one project id")
		}
		id := c.Args().First()

		config, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(config)

		var controller *projects.Controller
		if c.Bool("offline") {
			controller = projects.NewController(nil, logger)
			controller.SetProjects(seed.SampleProjectList())
		} else {
			tokens, err := api.NewTokenStore(config)
			if err != nil {
				return err
			}
			controller = projects.NewController(api.New(config, tokens, logger), logger)
		}

		project, err := controller.Fetch(c.Context, id)
		if err != nil {
			return err
		}

		printProjectDetail(project)

		return nil
	},
}

var projectsCreateCommand = &cli.Command{
	Name:  "create",
	Usage: "Create a new project",
	Flags: append(projectInputFlags(true), offlineFlag),
	Action: func(c *cli.Context) error {
		controller, err := buildController(c)
		if err != nil {
			return err
		}

		input, err := projectInputFromFlags(c)
		if err != nil {
			return err
		}

		project, err := controller.Add(c.Context, input)
		if err != nil {
			return err
		}

		fmt.Printf("Created project %s\n", project.ID)

		return nil
	},
}

var projectsEditCommand = &cli.Command{
	Name:      "edit",
	Usage:     "Edit an existing project",
	ArgsUsage: "<project-id>",
	Flags:     append(projectInputFlags(false), offlineFlag),
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("expected exactly one project id")
		}
		id := c.Args().First()

		controller, err := buildController(c)
		if err != nil {
			return err
		}

		input, err := projectInputFromFlags(c)
		if err != nil {
			return err
		}

		project, err := controller.Edit(c.Context, id, input)
		if err != nil {
			return err
		}

		fmt.Printf("Updated project %s\n", project.ID)

		return nil
	},
}

// buildController returns a loaded controller: offline mode carries the
// sample fixtures, otherwise the list is fetched from the API.
func buildController(c *cli.Context) (*projects.Controller, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(config)

	if c.Bool("offline") {
		controller := projects.NewController(nil, logger)
		controller.SetProjects(seed.SampleProjectList())
		return controller, nil
	}

	tokens, err := api.NewTokenStore(config)
	if err != nil {
		return nil, err
	}

	controller := projects.NewController(api.New(config, tokens, logger), logger)
	if err := controller.Load(c.Context); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	return controller, nil
}

func filterFromFlags(c *cli.Context) (projects.Filter, error) {
	filter := projects.NewFilter()
	filter.Search = c.String("search")
	filter.Categories = c.StringSlice("category")

	status, ok := projects.ParseStatus(c.String("status"))
	if !ok {
		return projects.Filter{}, fmt.Errorf("unknown status %q", c.String("status"))
	}
	filter.Status = status

	var err error
	if filter.After, err = dateFlag(c, "after"); err != nil {
		return projects.Filter{}, err
	}
	if filter.Before, err = dateFlag(c, "before"); err != nil {
		return projects.Filter{}, err
	}

	return filter, nil
}

func dateFlag(c *cli.Context, name string) (*time.Time, error) {
	if !c.IsSet(name) {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", c.String(name))
	if err != nil {
		return nil, fmt.Errorf("parse --%s: %w", name, err)
	}
	return &t, nil
}

func projectInputFlags(create bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: create},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}},
		&cli.StringFlag{Name: "category", Aliases: []string{"c"}},
		&cli.StringFlag{Name: "started", Usage: "Start date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "thumbnail"},
		&cli.IntFlag{Name: "progress"},
		&cli.IntFlag{Name: "goal"},
		&cli.StringFlag{Name: "contact"},
	}
}

func projectInputFromFlags(c *cli.Context) (projects.ProjectInput, error) {
	input := projects.ProjectInput{
		Name:        c.String("name"),
		Description: c.String("description"),
		Category:    c.String("category"),
		Thumbnail:   c.String("thumbnail"),
		Contact:     c.String("contact"),
	}

	started, err := dateFlag(c, "started")
	if err != nil {
		return projects.ProjectInput{}, err
	}
	input.DateStarted = started

	if c.IsSet("progress") {
		input.Progress = utils.IntPtr(c.Int("progress"))
	}
	if c.IsSet("goal") {
		input.Goal = utils.IntPtr(c.Int("goal"))
	}

	return input, nil
}

func printProjectLine(p types.Project) {
	status := "active"
	if p.Completed() {
		status = "completed"
	}

	fmt.Printf("%-14s %-28s %-18s %3.0f%%  %s\n",
		p.ID, p.Name, p.Category, projects.PercentComplete(p)*100, status)
}

func printProjectDetail(p types.Project) {
	fmt.Printf("%s (%s)\n", p.Name, p.ID)
	fmt.Printf("Category:    %s\n", p.Category)
	fmt.Printf("Description: %s\n", p.Description)
	fmt.Printf("Started:     %s\n", p.DateStarted.Format("2 Jan 2006"))
	if p.DateCompleted != nil {
		fmt.Printf("Completed:   %s\n", p.DateCompleted.Format("2 Jan 2006"))
	}
	fmt.Printf("Progress:    %d / %d (%.0f%%)\n", p.Progress, p.Goal, projects.PercentComplete(p)*100)
	if p.Contact != "" {
		fmt.Printf("Contact:     %s\n", p.Contact)
	}
	for _, d := range p.BusinessDonations {
		fmt.Printf("Donation:    %s (est. $%d) from %s\n", d.Equipment, d.EstimatedValue, d.Donor)
	}
}
