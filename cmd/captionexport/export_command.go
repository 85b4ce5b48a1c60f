package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"captionexport/internal/config"
	"captionexport/internal/export"
	"captionexport/internal/timecode"
)

type reportFlags struct {
	encoding   string
	format     string
	frameRate  float64
	lineEnding string
	strict     bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "Output encoding (default from config, e.g. shift_jis, utf-8)")
	cmd.Flags().StringVar(&f.format, "timecode-format", "", "Timecode format: "+timecode.FormatNames())
	cmd.Flags().Float64Var(&f.frameRate, "frame-rate", 0, "Frame rate used when the project declares none")
	cmd.Flags().StringVar(&f.lineEnding, "line-ending", "", "Line ending: crlf or lf")
	cmd.Flags().BoolVar(&f.strict, "strict-encoding", false, "Fail instead of replacing unencodable characters")
}

// apply returns a validated copy of cfg with explicitly set flags applied.
func (f *reportFlags) apply(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	out := *cfg
	if value := strings.TrimSpace(f.encoding); value != "" {
		out.Output.Encoding = strings.ToLower(value)
	}
	if value := strings.TrimSpace(f.format); value != "" {
		out.Timecode.Format = strings.ToLower(value)
	}
	if cmd.Flags().Changed("frame-rate") {
		out.Timecode.FrameRate = f.frameRate
	}
	if value := strings.TrimSpace(f.lineEnding); value != "" {
		out.Output.LineEnding = strings.ToLower(value)
	}
	if cmd.Flags().Changed("strict-encoding") {
		out.Output.StrictEncoding = f.strict
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &out, nil
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Write the caption report for a project file",
		Long: `Export scans every video track of the project for title events, decodes
their text, and writes one "<timecode> <text>" line per caption sorted by
position. Without --output the report is written next to the project as
<file_prefix><project name><extension>.`,
		Args: cobra.ExactArgs(1),
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

			target := export.OutputPath(outputPath, cfg.Output.Dir, p.SourcePath(), p.FilePath(), cfg.Output.FilePrefix, cfg.Output.Extension)
			opts := export.OptionsFromConfig(cfg, target)
			opts.Logger = logger

			result, err := export.Run(cmd.Context(), p, opts)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, line := range exportStatusLines(result, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file path (default: derived from the project path)")
	flags.register(cmd)
	return cmd
}
