package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed
// to perform queries and handshakes.
//
// It should be embedded in another struct for CheckTx,
// DeliverTx and initializing state from the genesis.
// Errors on ABCI steps that take no user input (Info, InitChain,
// BeginBlock, EndBlock, Commit) are handled as panics, as there is no way to
// recover from them gracefully.
type StoreApp struct {
	logger log.Logger

	// name is what is returned from abci.Info
	name string

	// Database state (committed, check, deliver....)
	store *CommitStore

	// Code to initialize from a genesis file
	initializer custody.Initializer

	// How to handle queries
	queryRouter custody.QueryRouter

	// chainID is loaded from db in initialization
	// saved once in parseAppState
	chainID string

	// programID is the identity all derivations are bound to. It is either
	// configured on start up or loaded from the db, and must match the
	// genesis declaration.
	programID custody.Address

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext custody.Context

	// blockContext contains context info that is valid for the
	// current block (eg. height, header), reset on BeginBlock
	blockContext custody.Context

	debug bool
}

// NewStoreApp initializes this app into a ready state with some defaults
//
// panics if unable to properly load the state from the given store
func NewStoreApp(name string, store custody.CommitKVStore,
	queryRouter custody.QueryRouter, baseContext custody.Context) *StoreApp {
	s := &StoreApp{
		name: name,
		// note: panics if trouble initializing from store
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	s.chainID = mustLoadChainID(s.DeliverStore())
	if s.chainID != "" {
		s.baseContext = custody.WithChainID(s.baseContext, s.chainID)
	}
	s.programID = mustLoadProgramID(s.DeliverStore())

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = custody.WithHeight(s.baseContext, info.Version)
	return s
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// ProgramID returns the program identity of this ledger, or nil if neither
// configured nor initialized yet.
func (s *StoreApp) ProgramID() custody.Address {
	return s.programID.Clone()
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init custody.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithProgramID declares the program identity the handlers of this
// application were built with. It panics if the store was initialized with
// a different one.
func (s *StoreApp) WithProgramID(programID custody.Address) *StoreApp {
	if s.programID != nil && !s.programID.Equals(programID) {
		panic(fmt.Sprintf("program id %s does not match initialized %s", programID, s.programID))
	}
	s.programID = programID.Clone()
	return s
}

// WithDebug enables full error logs in ABCI responses.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// parseAppState is called from InitChain, the first time the chain
// starts, and not on restarts.
func (s *StoreApp) parseAppState(data []byte, chainID string, init custody.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}

	var appState custody.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return s.initGenesis(appState, chainID, init)
}

func (s *StoreApp) initGenesis(appState custody.Options, chainID string, init custody.Initializer) error {
	pid, err := programIDFromOptions(appState)
	if err != nil {
		return err
	}
	if s.programID != nil && !s.programID.Equals(pid) {
		return errors.Wrapf(errors.ErrInput, "genesis program id %s does not match %s", pid, s.programID)
	}

	if err := s.storeChainID(chainID); err != nil {
		return err
	}
	if err := saveProgramID(s.DeliverStore(), pid); err != nil {
		return err
	}
	s.programID = pid

	if init == nil {
		return nil
	}
	params := custody.GenesisParams{Deriver: custody.NewDeriver(pid)}
	return init.FromGenesis(appState, params, s.DeliverStore())
}

// LoadGenesis initializes the state from given genesis file. It is
// equivalent of receiving InitChain with the content of the file.
func (s *StoreApp) LoadGenesis(filePath string, init custody.Initializer) error {
	gen, err := LoadGenesis(filePath)
	if err != nil {
		return err
	}
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	return s.initGenesis(gen.AppState, gen.ChainID, init)
}

// store chainID and update context
func (s *StoreApp) storeChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = custody.WithChainID(s.baseContext, s.chainID)
	return nil
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = custody.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the block context for public use
func (s *StoreApp) BlockContext() custody.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods
func (s *StoreApp) DeliverStore() custody.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache for methods
func (s *StoreApp) CheckStore() custody.CacheableKVStore {
	return s.store.CheckStore()
}

//----------------------- ABCI ---------------------

// Info implements abci.Application. It returns the height and hash,
// as well as the abci name and version.
//
// The height is the block that holds the transactions, not the apphash itself.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		// Read comment on type header
		panic(err)
	}

	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		Version:          custody.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption - ABCI
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

/*
Query gets data from the app store.
A query request has the following elements:
* Path - the type of query
* Data - what to query, interpreted based on Path

Path may be "/<bucket>". It may be followed by "?prefix" to make a prefix
query.

Key and Value in Results are always serialized ResultSet
objects, able to support 0 to N values. They must be the
same size.
*/
func (s *StoreApp) Query(reqQuery abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(reqQuery.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return s.queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", reqQuery.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, reqQuery.Data)
	if err != nil {
		return s.queryError(err)
	}

	var res abci.ResponseQuery
	res.Height = info.Version
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	return res
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, msg := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{
		Log:  msg,
		Code: code,
	}
}

// Commit implements abci.Application
func (s *StoreApp) Commit() abci.ResponseCommit {
	commitID, err := s.store.Commit()
	if err != nil {
		// Read comment on type header
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)
	return abci.ResponseCommit{Data: commitID.Hash}
}

// InitChain implements ABCI
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		// Read comment on type header
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock implements ABCI
// Sets up blockContext
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := custody.WithHeight(s.baseContext, req.Header.Height)
	ctx = custody.WithBlockTime(ctx, req.Header.Time)
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock - ABCI
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
