package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"captionexport/internal/export"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusLabelWidth = 8

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%-*s %s", statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func exportStatusLines(result export.Result, colorize bool) []string {
	if result.Empty {
		return []string{renderStatusLine("Export", statusWarn, "project has no tracks; nothing written", colorize)}
	}
	lines := []string{
		renderStatusLine("Export", statusOK, fmt.Sprintf("wrote %d captions to %s", result.Lines, result.Path), colorize),
	}
	if skipped := result.Stats.SkippedEvents(); skipped > 0 {
		msg := fmt.Sprintf("%d of %d video track events carried no caption", skipped, result.Stats.Events)
		lines = append(lines, renderStatusLine("Skipped", statusInfo, msg, colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
