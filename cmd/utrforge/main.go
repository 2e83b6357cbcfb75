package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is the entry point for the design-engine CLI. Separated from the
// actual *cli.App construction to keep run testable.
func main() {
	run(os.Args)
}

// run builds the app and executes it, logging (and exiting non-zero on) any
// error the top-level command returns.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the utrforge command line app: a single top-level
// command, design, since there is exactly one operation this engine
// performs end to end.
func application() *cli.App {
	return &cli.App{
		Name:  "utrforge",
		Usage: "Evolve 5' UTR designs for tissue-selective translational efficiency.",
		Commands: []*cli.Command{
			designCommand(),
		},
	}
}
