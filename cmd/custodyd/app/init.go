package custodyd

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

// Default rents, in lamports, paid for state created by a transaction.
const (
	DefaultAccountRent = 2039280
	DefaultRecordRent  = 1447680

	devLamports = 1000000000000
)

type genesisConf struct {
	Token  token.Configuration  `json:"token"`
	Escrow escrow.Configuration `json:"escrow"`
}

type genesisState struct {
	ProgramID custody.Address        `json:"program_id"`
	Conf      genesisConf            `json:"conf"`
	Cash      []cash.GenesisAccount  `json:"cash"`
	Token     map[string]interface{} `json:"token"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// An address may be given as the first argument, otherwise a key is
// generated and its private part printed. The program identity is always
// random.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr custody.Address
	if len(args) > 0 {
		a, err := custody.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		addr = a
	} else {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		addr = custody.Address(pub)
		fmt.Printf("Generated key. Keep the private key safe: %X\n", []byte(priv))
	}

	programID := make(custody.Address, custody.AddressLength)
	if _, err := rand.Read(programID); err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}

	state := genesisState{
		ProgramID: programID,
		Conf: genesisConf{
			Token:  token.Configuration{AccountRent: DefaultAccountRent},
			Escrow: escrow.Configuration{RecordRent: DefaultRecordRent},
		},
		Cash: []cash.GenesisAccount{
			{Address: addr, Lamports: devLamports},
		},
		Token: map[string]interface{}{
			"mints":    []interface{}{},
			"accounts": []interface{}{},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command. The
// program identity is read from the genesis file, so it must have been
// initialized first.
func GenerateApp(opts server.AppOptions) (abci.Application, error) {
	gen, err := app.LoadGenesis(server.GenesisPath(opts.Home))
	if err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	programID, err := gen.ProgramID()
	if err != nil {
		return nil, err
	}

	application, err := Application(programID, opts.Metrics, opts.DBPath, opts.Debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(opts.Logger)
	return application, nil
}
