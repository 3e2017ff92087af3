package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

type ConfigEditorModel struct {
	BaseModel
	Path []string
}

func NewConfigEditorModel(
	cfg *config.Config,
	old BaseModel,
) ConfigEditorModel {
	model := ConfigEditorModel{
		BaseModel: BaseModel{
			Options:   BuildNavigationForStruct(*cfg),
			Config:    cfg,
			oldCursor: old.cursor,
		},
		Path: []string{},
	}
	model.title = "Config Editor"
	return model
}

func (m ConfigEditorModel) FromFieldEditor(
	model FieldEditorModel,
) ConfigEditorModel {
	var options []ConfigItem
	if len(model.Path) == 0 {
		options = BuildNavigationForStruct(*model.Config)
	} else {
		value := GetValueByPath(model.Config, model.Path)
		options = BuildNavigationForStruct(value)
	}
	newModel := ConfigEditorModel{
		Path:      model.Path,
		BaseModel: model.BaseModel,
	}
	newModel.cursor = model.oldCursor
	newModel.Options = options
	newModel.title = "Config Editor"
	return newModel
}

func (m ConfigEditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.goBack(), nil
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

func (m ConfigEditorModel) View() string {
	return m.renderInner(func(s *strings.Builder) *strings.Builder {
		return renderConfigEdit(s, m)
	})
}

func (m ConfigEditorModel) goBack() tea.Model {
	if len(m.Path) > 0 {
		m.Path = m.Path[:len(m.Path)-1]
		if len(m.Path) == 0 {
			m.Options = BuildNavigationForStruct(*m.Config)
		} else {
			value := GetValueByPath(m.Config, m.Path)
			m.Options = BuildNavigationForStruct(value)
		}
	} else {
		return NewMainMenuModel(m.Config)
	}

	m.cursor = m.oldCursor
	m.err = nil
	m.message = ""
	return m
}

func (m ConfigEditorModel) handleEnter() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.Options) {
		return m, nil
	}

	item := &m.Options[m.cursor]
	if item.IsStruct {
		m.Path = append(m.Path, item.Name)
		m.Options = BuildNavigationForStruct(item.Value)
		m.oldCursor = m.cursor
		m.cursor = 0
	} else {
		return NewFieldEditorModel(m.Config, m.Path, m.Options, m.cursor), nil
	}
	return m, nil
}
