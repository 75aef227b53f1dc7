// Command bmx formats, checks and inspects Block Mixture files.
//
// Usage:
//
//	bmx [global options] command [command options] FILE...
//
// Flag defaults can be read from a YAML file given with --config:
//
//	max-line-size: 4194304
//	workers: 8
//	verbose: true
//
// A config file ending in .toml is read as TOML instead.
package main

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	bmx "github.com/anpydx/bmx-go"
)

var version = "2.0.0"

func main() {
	log.SetFlags(0)

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	flags := []cli.Flag{
		&cli.PathFlag{
			Name:    "config",
			Usage:   "read flag defaults from a YAML or TOML `FILE`",
			EnvVars: []string{"BMX_CONFIG"},
		},
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "max-line-size",
			Usage:   "longest accepted input line in `BYTES`",
			Value:   bmx.DefaultMaxLineSize,
			EnvVars: []string{"BMX_MAX_LINE_SIZE"},
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "workers",
			Usage:   "files checked concurrently by the check command",
			Value:   runtime.NumCPU(),
			EnvVars: []string{"BMX_WORKERS"},
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "print debug info to stderr",
			EnvVars: []string{"BMX_VERBOSE"},
		}),
	}

	app := &cli.App{
		Name:    "bmx",
		Usage:   "format, check and inspect Block Mixture files",
		Version: version,
		Flags:   flags,
		Before:  altsrc.InitInputSourceWithContext(flags, configSource),
		Suggest: true,
		Commands: []*cli.Command{
			fmtCommand(),
			checkCommand(),
			includeCommand(),
			getCommand(),
			shaderCommand(),
			manCommand(),
		},
	}
	return app
}

// configSource picks the altsrc loader by the extension of --config.
func configSource(cCtx *cli.Context) (altsrc.InputSourceContext, error) {
	if strings.EqualFold(filepath.Ext(cCtx.String("config")), ".toml") {
		return altsrc.NewTomlSourceFromFlagFunc("config")(cCtx)
	}
	return altsrc.NewYamlSourceFromFlagFunc("config")(cCtx)
}
