package progress

import "github.com/fatih/color"

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor && symbols.Checkmark == "✓" {
		return paint(color.FgGreen, symbols.Checkmark)
	}
	return symbols.Checkmark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor && symbols.Failure == "✗" {
		return paint(color.FgRed, symbols.Failure)
	}
	return symbols.Failure
}

// paint colors s regardless of the global NO_COLOR detection, which has
// already been applied through TerminalCapabilities.
func paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
