package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/urfave/cli/v3"
)

//go:embed example_report.sarif
var exampleReport string

func examplesCommand() *cli.Command {
	return &cli.Command{
		Name:  "example-report",
		Usage: "show an example diagnostic report",
		Description: "Print a minimal SARIF report in the shape tsalert reads.\n" +
			"Only message.text, the artifact uri and region startLine/startColumn are used.\n\n" +
			"Examples:\n" +
			"  tsalert example-report > report.sarif   # start from the example\n" +
			"  tsalert report.sarif ./src              # render it against a source tree",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprint(cmd.Root().Writer, exampleReport)
			return nil
		},
	}
}
