package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/cli/config"
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/secmon-lab/linkrelay/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdLookup() *cli.Command {
	var linearCfg config.Linear
	var relayCfg config.Relay

	flags := append(linearCfg.Flags(), relayCfg.Flags()...)

	return &cli.Command{
		Name:      "lookup",
		Aliases:   []string{"l"},
		Usage:     "Scan text for issue identifiers and print the summaries that would be posted",
		ArgsUsage: "<text...>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			text := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(text) == "" {
				return goerr.New("text to scan is required")
			}

			if err := relayCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to load relay configuration")
			}
			tracker, err := linearCfg.Configure()
			if err != nil {
				return err
			}

			patterns, err := buildPatterns(ctx, tracker)
			if err != nil {
				return err
			}

			uc := usecase.NewRelayUseCase(tracker, nil, patterns,
				usecase.WithIssueMaxAge(relayCfg.IssueMaxAge()),
				usecase.WithRenderOptions(relayCfg.RenderOptions()),
			)

			var w io.Writer = os.Stdout
			if c.Root().Writer != nil {
				w = c.Root().Writer
			}

			_, resolutions := uc.Summarize(ctx, text)
			printResolutions(w, resolutions, relayCfg.RenderOptions())
			return nil
		},
	}
}

func printResolutions(w io.Writer, resolutions []*model.Resolution, opt usecase.RenderOptions) {
	if len(resolutions) == 0 {
		fmt.Fprintln(w, color.YellowString("no issue identifiers found"))
		return
	}

	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.Faint)

	for _, res := range resolutions {
		s := usecase.Render(res, opt)
		if s == nil {
			fmt.Fprintf(w, "%s %s (%s)\n",
				color.RedString("skip"), res.Identifier, res.Reason)
			if res.Err != nil {
				label.Fprintf(w, "  %v\n", res.Err)
			}
			continue
		}

		title.Fprintln(w, s.Title)
		label.Fprint(w, "  url:     ")
		fmt.Fprintln(w, s.URL)
		label.Fprint(w, "  author:  ")
		fmt.Fprintln(w, s.AuthorName)
		label.Fprint(w, "  status:  ")
		fmt.Fprintf(w, "%s %s\n", s.Footer, color.HiBlackString(s.Color))
		if !s.Timestamp.IsZero() {
			label.Fprint(w, "  created: ")
			fmt.Fprintln(w, s.Timestamp.Format("2006-01-02 15:04:05 MST"))
		}
		fmt.Fprintf(w, "  %s\n\n", strings.ReplaceAll(s.Body, "\n", "\n  "))
	}
}
