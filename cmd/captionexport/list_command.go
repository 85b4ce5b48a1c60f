package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"captionexport/internal/captions"
	"captionexport/internal/export"
	"captionexport/internal/report"
	"captionexport/internal/textutil"
	"captionexport/internal/timecode"
)

// captionTextWidth wraps long captions so the timecode columns stay readable.
const captionTextWidth = 60

var captionColumns = []tableColumn{
	{Header: "#", Align: text.AlignRight},
	{Header: "Timecode"},
	{Header: "Frame", Align: text.AlignRight},
	{Header: "Track", Align: text.AlignRight},
	{Header: "Text", MaxWidth: captionTextWidth},
}

type captionView struct {
	Index    int    `json:"index"`
	Timecode string `json:"timecode"`
	Position int64  `json:"position"`
	Track    int    `json:"track"`
	Event    int    `json:"event"`
	Text     string `json:"text"`
}

type listOutput struct {
	Project   string        `json:"project"`
	Format    string        `json:"timecode_format"`
	FrameRate float64       `json:"frame_rate"`
	Captions  []captionView `json:"captions"`
	Skipped   int           `json:"skipped_events"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "Preview the captions a report would contain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := flags.apply(cmd, base)
			if err != nil {
				return err
			}
			p, logger, err := ctx.loadProject(cmd, args[0])
			if err != nil {
				return err
			}

			opts := export.OptionsFromConfig(cfg, "")
			opts.Logger = logger
			records, stats, tc, err := export.Collect(p, opts)
			if err != nil {
				return err
			}
			views := captionViews(report.Sort(records), tc)

			if asJSON {
				return writeJSON(cmd, listOutput{
					Project:   p.Name(),
					Format:    string(tc.Name()),
					FrameRate: tc.Rate(),
					Captions:  views,
					Skipped:   stats.SkippedEvents(),
				})
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No captions found")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{
					strconv.Itoa(v.Index),
					v.Timecode,
					strconv.FormatInt(v.Position, 10),
					strconv.Itoa(v.Track + 1),
					textutil.FlattenLineBreaks(v.Text),
				})
			}
			fmt.Fprintln(out, renderTable(captionColumns, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON instead of a table")
	flags.register(cmd)
	return cmd
}

func captionViews(records []captions.Record, tc timecode.Formatter) []captionView {
	views := make([]captionView, 0, len(records))
	for i, r := range records {
		views = append(views, captionView{
			Index:    i + 1,
			Timecode: tc.Render(r.Position),
			Position: r.Position,
			Track:    r.Track,
			Event:    r.Event,
			Text:     r.Text,
		})
	}
	return views
}
