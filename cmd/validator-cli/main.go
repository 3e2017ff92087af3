package main

import (
	"context"
	"fmt"
	"os"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/internal/app"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app.RunApplication(cfg)
}
