package tui

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func renderConfigEdit(
	s *strings.Builder,
	m ConfigEditorModel,
) *strings.Builder {
	if len(m.Path) > 0 {
		fmt.Fprintf(s, "Path: %s\n\n", strings.Join(m.Path, " → "))
	}

	for i, item := range m.Options {
		display := item.Name
		if item.IsStruct {
			display += " →"
		} else {
			display += fmt.Sprintf(": %s", FormatValue(item.Value))
		}

		if i == m.cursor {
			fmt.Fprintf(s, "→ %s\n", Styles.Selected.Render(display))
		} else {
			fmt.Fprintf(s, "  %s\n", Styles.Normal.Render(display))
		}
	}

	return s
}

func renderPreview(m PreviewModel, options []string) string {
	var s strings.Builder

	s.WriteString(Styles.Title.Render(m.title) + "\n\n")

	out, err := yaml.Marshal(m.Config)
	if err != nil {
		s.WriteString(Styles.Error.Render(err.Error()) + "\n\n")
	} else {
		s.WriteString(Styles.Normal.Render("Current configuration:") + "\n\n")
		for line := range strings.SplitSeq(strings.TrimSpace(string(out)), "\n") {
			if line == "" {
				continue
			}
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				key := Styles.ConfigVar.Render(parts[0])
				value := Styles.ConfigValue.Render(parts[1])
				s.WriteString(fmt.Sprintf("%s:%s\n", key, value))
			} else {
				s.WriteString(line + "\n")
			}
		}
	}

	s.WriteString("\n")

	for i, option := range options {
		if i == m.cursor {
			s.WriteString(fmt.Sprintf("→ %s\n", Styles.Selected.Render(option)))
		} else {
			s.WriteString(fmt.Sprintf("  %s\n", Styles.Normal.Render(option)))
		}
	}

	return s.String()
}

func renderMenu(
	s *strings.Builder,
	cursor int,
	options []string,
) *strings.Builder {
	for i, option := range options {
		if i == cursor {
			fmt.Fprintf(s, "→ %s\n", Styles.Selected.Render(option))
		} else {
			fmt.Fprintf(s, "  %s\n", Styles.Normal.Render(option))
		}
	}

	return s
}
