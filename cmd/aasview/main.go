package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/cmd"
)

func main() {
	defer app.SyncLogging()

	err := cmd.NewRoot().Execute()
	if err == nil {
		return
	}

	var exit app.ExitResult
	if errors.As(err, &exit) {
		if exit.Message != "" {
			out := os.Stdout
			if exit.UseStderr() {
				out = os.Stderr
			}
			fmt.Fprintln(out, exit.Message)
		}
		os.Exit(exit.Code)
	}

	fmt.Fprintln(os.Stderr, "Error: "+err.Error())
	os.Exit(1)
}
