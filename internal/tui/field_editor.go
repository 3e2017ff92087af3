package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

type FieldEditorModel struct {
	BaseModel
	textInput textinput.Model
	EditField *ConfigItem
	Path      []string
}

func NewFieldEditorModel(
	cfg *config.Config,
	path []string,
	navigation []ConfigItem,
	cursor int,
) FieldEditorModel {
	ti := textinput.New()
	ti.Placeholder = "Enter new value"
	ti.Width = 50
	ti.Prompt = "> "
	ti.Focus()
	return FieldEditorModel{
		BaseModel: BaseModel{
			Options:   navigation,
			Config:    cfg,
			oldCursor: cursor,
		},
		textInput: ti,
		EditField: &navigation[cursor],
		Path:      path,
	}
}

func (m FieldEditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FieldEditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.goBack(), nil
		case "enter":
			return m.handleEnter()
		}
	}
	return m, cmd
}

func (m FieldEditorModel) View() string {
	var s strings.Builder

	s.WriteString(Styles.Title.Render(" Field Editor ") + "\n\n")

	s.WriteString(
		fmt.Sprintf("Field: %s\n", Styles.Selected.Render(m.EditField.Name)),
	)
	s.WriteString(fmt.Sprintf("Current value: %s\n\n",
		Styles.Normal.Render(FormatValue(m.EditField.Value))))

	s.WriteString("New value:\n")
	s.WriteString(m.textInput.View() + "\n\n")

	s.WriteString(Styles.Normal.Render("Press ") +
		Styles.Selected.Render("Enter") +
		Styles.Normal.Render(" to save, ") +
		Styles.Selected.Render("Esc") +
		Styles.Normal.Render(" to cancel"))

	return s.String()
}

func (m FieldEditorModel) goBack() tea.Model {
	m.textInput.Blur()

	var model ConfigEditorModel
	return model.FromFieldEditor(m)
}

func (m FieldEditorModel) handleEnter() (tea.Model, tea.Cmd) {
	err := SetField(m.Config, m.Path, m.EditField.Name, m.textInput.Value())
	if err != nil {
		m.err = err
	} else {
		m.message = "Field updated"
		m.err = nil
		m.textInput.Blur()
	}
	var model ConfigEditorModel
	return model.FromFieldEditor(m), nil
}
