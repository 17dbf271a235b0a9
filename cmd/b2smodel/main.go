// b2smodel is the command-line front end of the BLAKE2s reference model. It
// hashes files, dumps golden compression traces and checks traces produced by
// other implementations against the model.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "b2smodel"
	app.Usage = "BLAKE2s golden reference model"
	app.Flags = []cli.Flag{
		verbosityFlag,
	}
	app.Before = setupLogging
	app.Commands = []*cli.Command{
		sumCommand,
		traceCommand,
		verifyCommand,
		selftestCommand,
	}
	return app
}

func setupLogging(ctx *cli.Context) error {
	lvl, err := logrus.ParseLevel(ctx.String(verbosityFlag.Name))
	if err != nil {
		return err
	}
	logrus.SetOutput(ctx.App.ErrWriter)
	logrus.SetLevel(lvl)
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
