package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ColorsEnabled reports whether stdout is a terminal and NO_COLOR is unset
// (https://no-color.org/).
func ColorsEnabled() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	white  = "\033[37m"
)

const (
	SymbolSuccess = "+"
	SymbolError   = "x"
	SymbolWarning = "!"
	SymbolInfo    = "*"
	SymbolArrow   = "->"
	SymbolBullet  = "-"
)

func style(text string, codes ...string) string {
	if !ColorsEnabled() {
		return text
	}
	var prefix string
	for _, code := range codes {
		prefix += code
	}
	return prefix + text + reset
}

func Bold(text string) string      { return style(text, bold) }
func Dim(text string) string       { return style(text, dim) }
func Success(text string) string   { return style(text, green) }
func Error(text string) string     { return style(text, red) }
func Warning(text string) string   { return style(text, yellow) }
func Info(text string) string      { return style(text, cyan) }
func Header(text string) string    { return style(text, bold, white) }
func Secondary(text string) string { return style(text, dim, cyan) }

func FprintHeader(w io.Writer, text string) {
	fmt.Fprintln(w, Header(text))
}

func FprintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", Success(SymbolSuccess), Success(message))
}

func FprintFailure(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", Error(SymbolError), Error(message))
}

// FprintBullet prints an indented list entry.
func FprintBullet(w io.Writer, message string) {
	fmt.Fprintf(w, "    %s %s\n", SymbolBullet, message)
}

func PrintSuccess(message string) {
	FprintSuccess(os.Stdout, message)
}

// PrintError prints to stderr.
func PrintError(message string) {
	FprintFailure(os.Stderr, message)
}

// PrintWarning prints to stderr.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Warning(SymbolWarning), Warning(message))
}

func PrintInfo(message string) {
	fmt.Printf("%s %s\n", Info(SymbolInfo), Info(message))
}

func PrintStep(message string) {
	fmt.Printf("  %s %s\n", SymbolArrow, message)
}

func PrintSecondary(message string) {
	fmt.Printf("  %s %s\n", SymbolArrow, Secondary(message))
}

// Plural returns the singular or plural form based on count
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
