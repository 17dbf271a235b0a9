package main

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/b2model/blake2/blake2s"
)

// paramFile is the on-disk form of a parameter block. Byte strings are hex.
type paramFile struct {
	Size   int    `toml:"size"`
	Key    string `toml:"key"`
	Salt   string `toml:"salt"`
	Person string `toml:"person"`
}

func loadParamFile(path string) (*paramFile, error) {
	var pf paramFile
	md, err := toml.DecodeFile(path, &pf)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("config %s: unknown field %q", path, undecoded[0].String())
	}
	return &pf, nil
}

func decodeHex(name, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", name)
	}
	return b, nil
}

// makeConfig builds the hash configuration from the config file, if any, with
// explicitly set flags taking precedence.
func makeConfig(ctx *cli.Context) (blake2s.Config, error) {
	pf := &paramFile{Size: sizeFlag.Value}
	if path := ctx.Path(configFlag.Name); path != "" {
		var err error
		if pf, err = loadParamFile(path); err != nil {
			return blake2s.Config{}, err
		}
		if pf.Size == 0 {
			pf.Size = sizeFlag.Value
		}
	}
	if ctx.IsSet(sizeFlag.Name) {
		pf.Size = ctx.Int(sizeFlag.Name)
	}
	if ctx.IsSet(keyFlag.Name) {
		pf.Key = ctx.String(keyFlag.Name)
	}
	if ctx.IsSet(saltFlag.Name) {
		pf.Salt = ctx.String(saltFlag.Name)
	}
	if ctx.IsSet(personFlag.Name) {
		pf.Person = ctx.String(personFlag.Name)
	}

	cfg := blake2s.Config{Size: pf.Size}
	var err error
	if cfg.Key, err = decodeHex("key", pf.Key); err != nil {
		return cfg, err
	}
	if cfg.Salt, err = decodeHex("salt", pf.Salt); err != nil {
		return cfg, err
	}
	if cfg.Personalization, err = decodeHex("personalization", pf.Person); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// readMessage returns the --text literal, the named file, or stdin when the
// argument is missing or "-".
func readMessage(ctx *cli.Context) ([]byte, error) {
	if ctx.IsSet(textFlag.Name) {
		return []byte(ctx.String(textFlag.Name)), nil
	}
	var r io.Reader = os.Stdin
	if name := ctx.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return ioutil.ReadAll(r)
}
