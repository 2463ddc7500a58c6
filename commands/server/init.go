package server

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagForce = "f"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// GenesisPath returns the location of the genesis file for given home.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd will add the application state to the genesis file created by
// tendermint init, and write the default node configuration if none
// exists.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fs.Bool(flagForce, false, "overwrite existing app_state")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := GenesisPath(home)
	logger.Info("Loading genesis", "path", genFile)
	doc, err := loadGenesisDoc(genFile)
	if err != nil {
		return err
	}
	if _, ok := doc["app_state"]; ok && !*force {
		return errors.Wrap(errors.ErrState, "genesis file already has app_state, use -f to overwrite")
	}

	options, err := gen(fs.Args())
	if err != nil {
		return err
	}
	doc["app_state"] = options
	if err := saveGenesisDoc(genFile, doc); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)

	if _, err := os.Stat(filepath.Join(home, "config", ConfigFile)); os.IsNotExist(err) {
		if err := WriteConfig(home, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Default config written", "file", ConfigFile)
	}
	return nil
}

func loadGenesisDoc(path string) (GenesisDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s, did you run tendermint init?", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot parse %s: %s", path, err)
	}
	return doc, nil
}

func saveGenesisDoc(path string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
