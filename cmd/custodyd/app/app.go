/*
Package custodyd links together all the various components
to construct the custodyd app.
*/
package custodyd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/utils"
	"github.com/iov-one/custody/x/vault"
	"github.com/prometheus/client_golang/prometheus"
)

// Name is reported by the abci Info call.
const Name = "custodyd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. metrics may be nil.
func Chain(metrics custody.Decorator) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the message
		// fails, while all state changes of the message are rolled back
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all handlers of the ledger.
func Router(authFn x.Authenticator, d custody.Deriver) *app.Router {
	r := app.NewRouter()
	cashCtrl := cash.NewController()
	tokenCtrl := token.NewController(d, cashCtrl)

	cash.RegisterRoutes(r, authFn, cashCtrl)
	token.RegisterRoutes(r, authFn, tokenCtrl)
	escrow.RegisterRoutes(r, authFn, d, cashCtrl, tokenCtrl)
	vault.RegisterRoutes(r, authFn, d, cashCtrl)
	sigs.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/mints", "/tokaccounts", "/escrows" and
// "/auth"
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		token.RegisterQuery,
		escrow.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns all extensions that read the genesis file.
func Initializers() custody.Initializer {
	return custody.MultiInitializer{
		cash.Initializer{},
		token.Initializer{},
		escrow.Initializer{},
	}
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(d custody.Deriver, metrics custody.Decorator) custody.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn, d))
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(programID custody.Address, reg prometheus.Registerer, dbPath string, debug bool) (app.BaseApp, error) {
	var metrics custody.Decorator
	if reg != nil {
		m, err := utils.NewMetrics(reg)
		if err != nil {
			return app.BaseApp{}, err
		}
		metrics = m
	}

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers()).
		WithProgramID(programID)
	stack := Stack(custody.NewDeriver(programID), metrics)
	return app.NewBaseApp(store, TxDecoder, stack, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
