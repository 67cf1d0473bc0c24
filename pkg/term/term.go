// Package term prints user-facing messages to the terminal. Message
// templates carry light markup: <em> for emphasis, <warn> for
// warnings, <err> for errors. The markup renders as ANSI colors on a
// terminal and disappears when output is piped or redirected.
//
// Structured logs are a separate concern, handled by slog; term is
// only for the console lines a person running the tool should see.
package term

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/econdata/cpidb/pkg/errcode"
	"github.com/fatih/color"
)

var (
	emColor   = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

var markup = regexp.MustCompile(`(?s)<(em|warn|err)>(.*?)</(?:em|warn|err)>`)

// Render replaces markup tags with their ANSI color sequences. When
// colors are disabled (non-terminal output, NO_COLOR) the tags are
// stripped and the content kept.
func Render(s string) string {
	return markup.ReplaceAllStringFunc(s, func(m string) string {
		sub := markup.FindStringSubmatch(m)
		switch sub[1] {
		case "warn":
			return warnColor.Sprint(sub[2])
		case "err":
			return errColor.Sprint(sub[2])
		default:
			return emColor.Sprint(sub[2])
		}
	})
}

// Info prints a message line to stdout.
func Info(format string, args ...any) {
	fmt.Fprintln(os.Stdout, Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning line to stderr, colored as a warning.
func Warn(format string, args ...any) {
	msg := Render(fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, warnColor.Sprint(msg))
}

// PrintError prints the user-facing description of err to stderr.
// Application errors render their message template with markup;
// anything else prints verbatim.
func PrintError(err error) {
	var appErr *errcode.Error
	if errors.As(err, &appErr) {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			errColor.Sprint("Error:"), Render(appErr.Message()))
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", errColor.Sprint("Error:"), err)
}
