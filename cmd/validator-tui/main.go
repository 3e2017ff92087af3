package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/internal/app"
	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/internal/tui"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewMainMenuModel(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Printf("error: %v", err)
		os.Exit(1)
	}

	// Check if we should run the validator after exiting the TUI
	if m, ok := finalModel.(tui.PreviewModel); ok && m.RunRequested {
		fmt.Println("starting validation")

		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("application panicked: %v\n", r)
				fmt.Println("stack trace:")
				fmt.Println(string(debug.Stack()))
			}
		}()

		app.RunApplication(m.Config)
	}
}
