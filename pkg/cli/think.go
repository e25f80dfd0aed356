package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/engine"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func thinkCommand() *cli.Command {
	var (
		cfg      config
		problem  string
		criteria string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "problem",
			Aliases:     []string{"p"},
			Usage:       "Problem statement for the session",
			Required:    true,
			Destination: &problem,
		},
		&cli.StringFlag{
			Name:        "criteria",
			Usage:       "Success criteria for the session",
			Value:       "a clear conclusion",
			Destination: &criteria,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "think",
		Usage: "Interactive thinking session",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			logging.SetDefault(logger)
			ctx = logging.With(ctx, logger)

			eng, err := cfg.newEngine()
			if err != nil {
				return err
			}

			sessionID, err := eng.StartSession(ctx, problem, criteria, nil)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Session %s started. Plain lines become thoughts; /help for commands.\n", sessionID)

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			repl := &thinkREPL{engine: eng, out: w}
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "/exit" {
					break
				}

				if err := repl.handle(ctx, line); err != nil {
					fmt.Fprintf(w, "error: %s\n", err)
				}
				rl.SetPrompt(repl.prompt())
			}

			fmt.Fprintf(w, "\nSession %s finished.\n", sessionID)
			return nil
		},
	}
}

// thinkREPL drives the engine from interactive input. lastThought tracks
// the most recent thought so branches can fork from it; activeBranch, when
// set, receives plain-line thoughts instead of the main thread.
type thinkREPL struct {
	engine       *engine.Engine
	out          io.Writer
	lastThought  model.ThoughtID
	activeBranch model.BranchID
}

func (r *thinkREPL) prompt() string {
	if r.activeBranch != "" {
		return fmt.Sprintf("[%s]> ", r.activeBranch)
	}
	return "> "
}

func (r *thinkREPL) handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, "/") {
		return r.addThought(ctx, line)
	}

	cmd, rest, _ := strings.Cut(line[1:], " ")
	switch cmd {
	case "help":
		fmt.Fprint(r.out, `Commands:
  <text>                   add a thought (to the active branch if any)
  /revise <id> <text>      supersede a thought with new content
  /branch <name> <purpose> open a branch from the last thought and switch to it
  /main                    switch back to the main thread
  /merge [branch-id]       merge the active (or named) branch
  /tree                    print the thought tree
  /analyze                 print the session analysis
  /exit                    finish the session
`)
		return nil

	case "revise":
		id, content, ok := strings.Cut(rest, " ")
		if !ok || strings.TrimSpace(content) == "" {
			return goerr.New("usage: /revise <thought-id> <new content>")
		}
		revised, err := r.engine.ReviseThought(ctx, model.ThoughtID(id), content, 0.8)
		if err != nil {
			return err
		}
		r.lastThought = revised.ID
		fmt.Fprintf(r.out, "revised %s -> %s\n", id, revised.ID)
		return nil

	case "branch":
		name, purpose, _ := strings.Cut(rest, " ")
		if name == "" {
			return goerr.New("usage: /branch <name> [purpose]")
		}
		branchID, err := r.engine.CreateBranch(ctx, name, r.lastThought, purpose)
		if err != nil {
			return err
		}
		r.activeBranch = branchID
		fmt.Fprintf(r.out, "branch %s opened\n", branchID)
		return nil

	case "main":
		r.activeBranch = ""
		return nil

	case "merge":
		branchID := r.activeBranch
		if rest != "" {
			branchID = model.BranchID(strings.TrimSpace(rest))
		}
		if branchID == "" {
			return goerr.New("no active branch; usage: /merge [branch-id]")
		}
		merged, err := r.engine.MergeBranch(ctx, branchID, "")
		if err != nil {
			return err
		}
		if branchID == r.activeBranch {
			r.activeBranch = ""
		}
		fmt.Fprintf(r.out, "merged %d thoughts from %s\n", len(merged), branchID)
		return nil

	case "tree":
		return r.printJSON(r.engine.GetThoughtTree())

	case "analyze":
		return r.printJSON(r.engine.GetAnalysis())

	default:
		return goerr.New("unknown command", goerr.V("command", cmd))
	}
}

func (r *thinkREPL) addThought(ctx context.Context, content string) error {
	var deps []model.ThoughtID
	if r.lastThought != "" {
		deps = []model.ThoughtID{r.lastThought}
	}

	thought, err := r.engine.AddThought(ctx, engine.AddThoughtInput{
		Content:      content,
		Dependencies: deps,
		Confidence:   0.8,
		BranchID:     r.activeBranch,
	})
	if err != nil {
		return err
	}

	r.lastThought = thought.ID
	fmt.Fprintf(r.out, "thought %s (#%d)\n", thought.ID, thought.Number)
	if len(thought.Contradictions) > 0 {
		fmt.Fprintf(r.out, "  contradicts: %v\n", thought.Contradictions)
	}
	for _, p := range thought.PatternResults {
		fmt.Fprintf(r.out, "  pattern: %s (%.2f, %s)\n", p.Pattern, p.Confidence, p.Strategy)
	}
	return nil
}

func (r *thinkREPL) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal output")
	}
	fmt.Fprintf(r.out, "%s\n", data)
	return nil
}
