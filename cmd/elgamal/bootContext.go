package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/smallyu/go-elgamal/internal/config"
	"github.com/smallyu/go-elgamal/internal/demo"
	"github.com/smallyu/go-elgamal/internal/digest"
	"github.com/smallyu/go-elgamal/internal/store"
)

const (
	exitOK       = 0
	exitError    = 1
	exitMismatch = 2
)

var errMismatch = cli.Exit("'Plaintext' and 'Decrypted plaintext' differ", exitMismatch)

type bootContext struct {
	configFile string
	dir        string
	logdir     string
	vFlag      int
	vSpecified bool

	stdout io.Writer
	stderr io.Writer
	random io.Reader
	conf   *config.Config
}

func newBootContext(stdout, stderr io.Writer) *bootContext {
	return &bootContext{stdout: stdout, stderr: stderr, random: rand.Reader}
}

// global before handler
func (ctx *bootContext) initialize(c *cli.Context) error {
	ctx.vSpecified = c.IsSet("v")
	if err := setLogOutput(ctx.logdir); err != nil {
		return err
	}
	return setLogVerbose(ctx.vFlag)
}

func (ctx *bootContext) initConfig() (*demo.Runner, error) {
	conf, err := config.Detect(ctx.configFile)
	if err != nil {
		return nil, err
	}
	if ctx.dir != "" {
		conf.Files.Dir = ctx.dir
	}
	if !ctx.vSpecified && conf.ElGamal.Verbose > 0 { // no -v
		if err := setLogVerbose(conf.ElGamal.Verbose); err != nil {
			return nil, err
		}
	}
	if path := conf.Path(); path != "" {
		glog.Infoln("Loaded config", path)
	}
	ctx.conf = conf
	return &demo.Runner{
		Store:  store.NewFileStore(conf.Files.Dir),
		Random: ctx.random,
		Config: conf,
		Out:    ctx.stdout,
	}, nil
}

// ./elgamal [run]
func (ctx *bootContext) runCommandHandler(c *cli.Context) error {
	if c.Args().Len() > 0 {
		return commandUsageError(c)
	}
	runner, err := ctx.initConfig()
	if err != nil {
		return err
	}
	report, err := runner.Run(c.Context)
	if err != nil {
		return err
	}
	if !report.Match() {
		return errMismatch
	}
	return nil
}

// ./elgamal genparams
func (ctx *bootContext) genparamsCommandHandler(c *cli.Context) error {
	runner, err := ctx.initConfig()
	if err != nil {
		return err
	}
	params, err := runner.GenerateParams(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.stdout, "Public prime: %s\nPublic generator: %s\n", params.P, params.G)
	return nil
}

// ./elgamal digest FILE
func (ctx *bootContext) digestCommandHandler(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return commandUsageError(c)
	}
	runner, err := ctx.initConfig()
	if err != nil {
		return err
	}
	sum, err := digest.File(c.Args().First())
	if err != nil {
		return err
	}
	m, err := digest.Save(runner.Store, ctx.conf.Files.Message, sum)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.stdout, "%x  %s\n", sum, c.Args().First())
	glog.V(1).Infof("message has %d bits", m.BitLen())
	return nil
}

// ./elgamal verify
func (ctx *bootContext) verifyCommandHandler(c *cli.Context) error {
	runner, err := ctx.initConfig()
	if err != nil {
		return err
	}
	params, err := runner.Verify()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.stdout, "OK: %d-bit safe prime, generator %s\n", params.P.BitLen(), params.G)
	return nil
}

// ./elgamal config [-o FILE]
func (ctx *bootContext) configCommandHandler(c *cli.Context) error {
	output := c.String("output")
	if output == "" {
		return config.WriteTemplate(ctx.stdout)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if err := config.WriteTemplate(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "config")
	}
	fmt.Fprintln(ctx.stderr, "Wrote", output)
	return nil
}

func commandUsageError(c *cli.Context) error {
	return cli.Exit(fmt.Sprintf("unexpected arguments %q, see --help", c.Args().Slice()), exitError)
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitError
}

func setLogOutput(logdir string) error {
	if logdir == "" {
		return flag.Set("logtostderr", "true")
	}
	if err := os.MkdirAll(logdir, 0755); err != nil {
		return errors.Wrap(err, "logdir")
	}
	if err := flag.Set("logtostderr", "false"); err != nil {
		return err
	}
	return flag.Set("log_dir", logdir)
}

func setLogVerbose(level int) error {
	return flag.Set("v", strconv.Itoa(level))
}
