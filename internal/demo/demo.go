// Package demo runs the ElGamal demonstration: two participants share
// stored domain parameters, one encrypts the stored message to the other,
// and the decrypted result is compared and written back.
package demo

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/smallyu/go-elgamal/internal/codec"
	"github.com/smallyu/go-elgamal/internal/config"
	"github.com/smallyu/go-elgamal/internal/crypto/elgamal"
	"github.com/smallyu/go-elgamal/internal/crypto/safeprime"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

// Runner wires the store, the randomness source and the configuration.
type Runner struct {
	Store  elg.Store
	Random io.Reader
	Config *config.Config
	Out    io.Writer // report destination, nil to discard
}

// Report collects the public values of one run.
type Report struct {
	Plaintext   *big.Int
	Prime       *big.Int
	Generator   *big.Int
	PublicAlice *big.Int
	PublicBob   *big.Int
	Ciphertext  *elgamal.Ciphertext
	Decrypted   *big.Int
	Fresh       bool // ephemeral secret drawn per message
}

// Match reports whether decryption reproduced the plaintext.
func (r *Report) Match() bool {
	return r.Plaintext.Cmp(r.Decrypted) == 0
}

// WriteTo prints the report, one labelled value per line.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, `Plaintext: %s
Public prime: %s
Public generator: %s
Public alice: %s
Public bob: %s
Ciphertext1: %s
Ciphertext2: %s
Decrypted plaintext: %s
'Plaintext' and 'Decrypted plaintext' are the same message: %t
`,
		codec.Text(r.Plaintext),
		r.Prime,
		r.Generator,
		r.PublicAlice,
		r.PublicBob,
		r.Ciphertext.C1,
		r.Ciphertext.C2,
		codec.Text(r.Decrypted),
		r.Match())
	return int64(n), err
}

// GenerateParams searches a safe prime and a generator with the configured
// sizes and budgets and saves both.
func (rn *Runner) GenerateParams(ctx context.Context) (*elgamal.Params, error) {
	if err := rn.validate(); err != nil {
		return nil, err
	}
	conf := rn.Config.ElGamal
	test := rn.Config.GeneratorTest()

	glog.Infof("Searching %d-bit safe prime (certainty %d)", conf.BitLength+1, conf.Certainty)
	sp, err := safeprime.GenerateSafePrime(ctx, rn.Random, conf.BitLength, conf.Certainty, rn.Config.Attempts.SafePrime)
	if err != nil {
		return nil, errors.Wrap(err, "generate prime")
	}
	v(LV_SEARCH).Infoln("p:", sp.P)

	glog.Infof("Trying to find generator (%s test)", test)
	g, err := safeprime.FindGenerator(rn.Random, sp.P, test, rn.Config.Attempts.Generator)
	if err != nil {
		return nil, errors.Wrap(err, "generate generator")
	}
	v(LV_SEARCH).Infoln("g:", g)

	params, err := elgamal.NewParams(sp.P, g)
	if err != nil {
		return nil, errors.Wrap(err, "generate")
	}

	files := rn.Config.Files
	if err := rn.save(files.Generator, params.G); err != nil {
		return nil, err
	}
	if err := rn.save(files.Prime, params.P); err != nil {
		return nil, err
	}
	return params, nil
}

// Verify loads the stored parameters and checks that p is a safe prime and
// that g passes the configured generator test.
func (rn *Runner) Verify() (*elgamal.Params, error) {
	if err := rn.validate(); err != nil {
		return nil, err
	}
	params, err := rn.loadParams()
	if err != nil {
		return nil, err
	}
	if err := safeprime.Verify(params.P, rn.Config.ElGamal.Certainty); err != nil {
		return nil, errors.Wrap(err, "verify")
	}
	test := rn.Config.GeneratorTest()
	if !safeprime.IsGenerator(params.G, params.P, test) {
		return nil, errors.Wrapf(elg.ErrInvalidParams, "verify: g fails the %s generator test", test)
	}
	return params, nil
}

// Run performs the round trip. Any storage failure aborts before arithmetic.
func (rn *Runner) Run(ctx context.Context) (*Report, error) {
	if err := rn.validate(); err != nil {
		return nil, err
	}
	files := rn.Config.Files

	plaintext, err := rn.load(files.Message)
	if err != nil {
		return nil, err
	}
	params, err := rn.loadParams()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Two independent participants on the shared group
	alice, err := elgamal.GenerateKey(rn.Random, params, rn.Config.Attempts.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "alice key")
	}
	bob, err := elgamal.GenerateKey(rn.Random, params, rn.Config.Attempts.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "bob key")
	}

	fresh := rn.Config.FreshEphemeral()
	var ct *elgamal.Ciphertext
	if fresh {
		ct, err = elgamal.EncryptFresh(rn.Random, alice.Public(), plaintext)
	} else {
		ct, err = elgamal.Encrypt(alice.Public(), bob, plaintext)
	}
	if err != nil {
		return nil, errors.Wrap(err, "encrypt")
	}
	v(LV_CIPHER).Infof("c1=%s c2=%s", ct.C1, ct.C2)

	decrypted, err := elgamal.Decrypt(alice, ct)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt")
	}

	report := &Report{
		Plaintext:   plaintext,
		Prime:       params.P,
		Generator:   params.G,
		PublicAlice: alice.Y,
		PublicBob:   bob.Y,
		Ciphertext:  ct,
		Decrypted:   decrypted,
		Fresh:       fresh,
	}
	if !report.Match() {
		glog.Warningf("decrypted plaintext differs from the plaintext")
	}

	if err := rn.save(files.Decrypted, decrypted); err != nil {
		return report, err
	}
	if rn.Out != nil {
		if _, err := report.WriteTo(rn.Out); err != nil {
			return report, errors.Wrap(err, "report")
		}
	}
	return report, nil
}

// validate rejects a configuration built in code that Load would refuse.
func (rn *Runner) validate() error {
	if rn.Config == nil {
		return errors.New("demo: missing config")
	}
	return errors.Wrap(rn.Config.Validate(), "demo: config")
}

func (rn *Runner) loadParams() (*elgamal.Params, error) {
	files := rn.Config.Files
	g, err := rn.load(files.Generator)
	if err != nil {
		return nil, err
	}
	p, err := rn.load(files.Prime)
	if err != nil {
		return nil, err
	}
	params, err := elgamal.NewParams(p, g)
	if err != nil {
		return nil, errors.Wrap(err, "stored parameters")
	}
	return params, nil
}

func (rn *Runner) load(name string) (*big.Int, error) {
	x, err := rn.Store.Load(name)
	if err != nil {
		glog.Errorln(err)
		return nil, errors.Wrap(err, "demo")
	}
	v(LV_STORE).Infof("loaded %s (%d bits)", name, x.BitLen())
	return x, nil
}

func (rn *Runner) save(name string, x *big.Int) error {
	if err := rn.Store.Save(name, x); err != nil {
		glog.Errorln(err)
		return errors.Wrap(err, "demo")
	}
	v(LV_STORE).Infof("saved %s (%d bits)", name, x.BitLen())
	return nil
}
