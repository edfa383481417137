package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/weekly/internal/app"
	"github.com/dori/weekly/internal/config"
	"github.com/dori/weekly/internal/ui"
	"github.com/dori/weekly/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("weekly v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
		if cmd, ok := commands[os.Args[1]]; ok {
			if err := runCommand(os.Args[1], cmd, os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Parse flags for TUI mode
	viewFlag := flag.String("view", "", "Starting view (week, lists)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Run TUI
	if err := runTUI(*configFlag, *viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `weekly - A week planner with custom lists

Usage:
  weekly                        Start the TUI
  weekly add <task>             Quick add a task
  weekly week                   Print this week's tasks
  weekly lists                  Print custom lists and their tasks
  weekly list-add <name>        Create a list
  weekly list-rm <name|id>      Delete a list and its tasks
  weekly done <id>              Toggle a task done / not done
  weekly rm <id>                Delete a task
  weekly move <id> <day|list:name>
                                Move a task to a day or a list
  weekly version                Show version
  weekly help                   Show this help

Ids may be shortened to any unique prefix.
Subcommands accept -config <path> and -v (log to stderr).

Quick Add Syntax:
  weekly add "Buy milk"
  weekly add "Buy milk @tue !green"
  weekly add "Eggs list:Groceries -- free range"

  Day:          @mon .. @sun or full names (default: today)
  Category:     !red !green !blue !yellow !purple (default: blue)
  List:         list:<name>
  Description:  everything after --

TUI Options:
  --view <name>     Starting view (week, lists)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)
  --config <path>   Config file (default: $WEEKLY_CONFIG or ~/.config/weekly/config.toml)

Keybindings:
  Week:     h/l           Previous / next day
            j/k           Move cursor
            H/L           Move task to previous / next day
            [ / ]         Previous / next week
            t             Back to this week
            m             Move task to a list

  Lists:    tab           Switch between lists and tasks
            n / r / D     New / rename / delete list
            m             Move task to today

  Tasks:    a             Add task
            enter         Edit task
            space         Toggle done
            d             Delete (with confirm)

  General:  1 / 2         Week / lists view
            ctrl+t        Cycle theme
            ?             Help
            q             Quit`

	fmt.Println(help)
}

// loadConfig reads path, or the default config path when empty
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.Load(path)
}

// command is a one-shot subcommand run against a locked app
type command struct {
	usage   string
	minArgs int
	run     func(ctx context.Context, a *app.App, args []string, out io.Writer) error
}

var commands = map[string]command{
	"add":      {usage: "add <task>", minArgs: 1, run: cmdAdd},
	"week":     {usage: "week", run: cmdWeek},
	"lists":    {usage: "lists", run: cmdLists},
	"list-add": {usage: "list-add <name>", minArgs: 1, run: cmdListAdd},
	"list-rm":  {usage: "list-rm <name|id>", minArgs: 1, run: cmdListRemove},
	"done":     {usage: "done <id>", minArgs: 1, run: cmdDone},
	"rm":       {usage: "rm <id>", minArgs: 1, run: cmdRemove},
	"move":     {usage: "move <id> <day|list:name>", minArgs: 2, run: cmdMove},
}

func runCommand(name string, cmd command, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configFlag := fs.String("config", "", "Path to config file")
	verbose := fs.Bool("v", false, "Log to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < cmd.minArgs {
		return fmt.Errorf("usage: weekly %s", cmd.usage)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	if !*verbose {
		// keep stderr quiet unless something goes wrong
		cfg.Log.Level = "error"
	}

	ctx := context.Background()
	application, err := app.New(ctx, app.Options{Config: cfg, LogToStderr: true})
	if err != nil {
		return err
	}
	defer application.Close()

	if application.LoadErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: some saved data could not be read: %v\n", application.LoadErr)
	}

	if err := cmd.run(ctx, application, fs.Args(), os.Stdout); err != nil {
		return err
	}
	if err := application.TakeWriteError(); err != nil {
		return fmt.Errorf("not saved: %w", err)
	}
	return nil
}

func runTUI(configPath, startView, themeName string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if startView == "" {
		startView = cfg.StartView
	}
	view, ok := ui.ParseView(startView)
	if !ok {
		return fmt.Errorf("unknown view %q", startView)
	}

	if themeName == "" {
		themeName = cfg.Theme
	}
	if themeName != "" {
		t, ok := theme.ByName(strings.ToLower(themeName))
		if !ok {
			return fmt.Errorf("unknown theme %q", themeName)
		}
		theme.SetTheme(t)
	}

	// Create application
	application, err := app.New(context.Background(), app.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer application.Close()

	// Create root model
	model := ui.NewRootModel(application, view)

	// Create and run program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	start := time.Now()
	_, err = p.Run()
	application.Logger.Info("weekly stopped", "uptime", time.Since(start).Round(time.Second))
	return err
}
