package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oakwood-commons/tmenu/cmd"
	"github.com/oakwood-commons/tmenu/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrCancelled) {
			fmt.Fprintln(os.Stderr, err)
		}
		exitCode = 1
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
