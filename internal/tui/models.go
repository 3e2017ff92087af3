// Package tui is the interactive front end: a menu for editing the run
// configuration and kicking off a validation pass. It only consumes the
// pipeline's configuration surface and observable counters.
package tui

var (
	mainMenuOptions = []ConfigItem{
		{Name: "Edit config"},
		{Name: "Preview and run"},
	}
	previewOptions = []ConfigItem{
		{Name: "Back to main menu"},
		{Name: "Start validation"},
	}
)

// ConfigItem is one row of a navigable menu: either a leaf value or a
// nested config section.
type ConfigItem struct {
	Name     string
	Value    any
	IsStruct bool
}
