package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"github.com/urfave/cli/v2"
)

func init() {
	// -v is the log level
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newApp(boot *bootContext) *cli.App {
	app := &cli.App{
		Name:    app_name,
		Usage:   "ElGamal encryption round trip over stored domain parameters",
		Version: versionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "indicate config file if in nontypical path",
				Destination: &boot.configFile,
			},
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "directory of the stored values, overrides the config",
				Destination: &boot.dir,
			},
			&cli.IntFlag{
				Name:        "v",
				Usage:       "verbose log level",
				Destination: &boot.vFlag,
			},
			&cli.StringFlag{
				Name:        "logdir",
				Usage:       "if non-empty will write log into the directory",
				Destination: &boot.logdir,
			},
		},
		Before: boot.initialize,
		Action: boot.runCommandHandler,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "encrypt the stored message for alice and decrypt it again",
				Action: boot.runCommandHandler,
			},
			{
				Name:   "genparams",
				Usage:  "generate and store a safe prime and a generator",
				Action: boot.genparamsCommandHandler,
			},
			{
				Name:      "digest",
				Usage:     "store the SHA-256 sum of FILE as the message",
				ArgsUsage: "FILE",
				Action:    boot.digestCommandHandler,
			},
			{
				Name:   "verify",
				Usage:  "check the stored prime and generator",
				Action: boot.verifyCommandHandler,
			},
			{
				Name:  "config",
				Usage: "write a config template with the default values",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file, stdout when omitted",
					},
				},
				Action: boot.configCommandHandler,
			},
		},
		// exit codes are decided by main
		ExitErrHandler: func(*cli.Context, error) {},
		Writer:         boot.stdout,
		ErrWriter:      boot.stderr,
	}
	return app
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot := newBootContext(os.Stdout, os.Stderr)
	err := newApp(boot).RunContext(ctx, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ctx.Err() != nil {
			glog.Warningln("Terminated by signal")
		}
	}
	glog.Flush()
	os.Exit(exitCode(err))
}
