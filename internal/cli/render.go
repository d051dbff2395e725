package cli

import (
	"fmt"
	"os"
)

// Title prints a styled section title.
func Title(text string) {
	fmt.Println(TitleStyle.Render(text))
}

// Success prints a styled success line.
func Success(format string, args ...any) {
	fmt.Println(SuccessStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Warning prints a styled warning line.
func Warning(format string, args ...any) {
	fmt.Println(WarningStyle.Render("! " + fmt.Sprintf(format, args...)))
}

// Error prints a styled error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Subtle prints a dimmed line.
func Subtle(format string, args ...any) {
	fmt.Println(SubtleStyle.Render(fmt.Sprintf(format, args...)))
}
