package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

// PreviewModel shows the effective configuration and lets the user kick
// off the run. The program inspects RunRequested after the TUI exits.
type PreviewModel struct {
	BaseModel
	RunRequested bool
}

func NewPreviewModel(cfg *config.Config) PreviewModel {
	model := PreviewModel{
		BaseModel: BaseModel{
			Options: previewOptions,
			Config:  cfg,
		},
	}
	model.title = "Configuration Preview"
	return model
}

func (m PreviewModel) Init() tea.Cmd {
	return m.BaseModel.Init()
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			return NewMainMenuModel(m.Config), nil
		case "up":
			m.navigateUp()
		case "down":
			m.navigateDown()
		case "enter":
			return m.handleEnter()
		}
	}
	return m, nil
}

func (m PreviewModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0: // Back to main menu
		return NewMainMenuModel(m.Config), nil
	case 1: // Start validation
		m.RunRequested = true
		return m, tea.Quit
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var options []string
	for _, option := range previewOptions {
		options = append(options, option.Name)
	}
	return renderPreview(m, options)
}
