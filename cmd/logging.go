package cmd

import (
	"github.com/achilleasa/whitted/log"
	"github.com/urfave/cli"
)

var logger = log.New("whitted")

func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		if err := log.SetLevelFromName(name); err != nil {
			return err
		}
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return nil
}
