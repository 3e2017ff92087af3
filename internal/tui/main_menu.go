package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

type MainMenuModel struct {
	BaseModel
}

func NewMainMenuModel(cfg *config.Config) MainMenuModel {
	return MainMenuModel{
		BaseModel: BaseModel{
			Options: mainMenuOptions,
			title:   "Account Validator",
			Config:  cfg,
		},
	}
}

func (m MainMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		case "down":
			m.navigateDown()
		case "up":
			m.navigateUp()
		}
	}
	return m, nil
}

func (m MainMenuModel) View() string {
	var options []string
	for _, item := range m.Options {
		options = append(options, item.Name)
	}
	return m.renderInner(func(s *strings.Builder) *strings.Builder {
		return renderMenu(s, m.cursor, options)
	})
}

func (m MainMenuModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0: // Edit config
		return NewConfigEditorModel(m.Config, m.BaseModel), nil
	case 1: // Preview and run
		return NewPreviewModel(m.Config), nil
	}
	return m, nil
}
