package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed to perform queries and
// handshakes.
//
// It should be embedded in another struct for CheckTx, DeliverTx and
// initializing state from the genesis. Errors on ABCI steps that do not take
// user input (InitChain, Commit) are handled as panics, as there is no way
// to recover from them gracefully.
type StoreApp struct {
	logger log.Logger

	// name is what is returned from abci.Info
	name string

	// Database state (committed, check, deliver....)
	store *CommitStore

	// Code to initialize from a genesis file
	initializer piggybank.Initializer

	// How to handle queries
	queryRouter piggybank.QueryRouter

	// chainID is loaded from db in initialization, saved once in
	// parseAppState
	chainID string

	// baseContext contains context info that is valid for lifetime of
	// this app (eg. chainID)
	baseContext piggybank.Context

	// blockContext contains context info that is valid for the current
	// block (eg. height, header), reset on BeginBlock
	blockContext piggybank.Context

	debug bool
}

// NewStoreApp initializes this app into a ready state with some defaults.
//
// panics if unable to properly load the state from the given store
func NewStoreApp(name string, store piggybank.CommitKVStore,
	queryRouter piggybank.QueryRouter, baseContext piggybank.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	s.chainID = mustLoadChainID(s.DeliverStore())
	if s.chainID != "" {
		s.baseContext = piggybank.WithChainID(s.baseContext, s.chainID)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = piggybank.WithHeight(s.baseContext, info.Version)
	return s
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init piggybank.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug enables full error messages in query responses.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// parseAppState is called from InitChain, the first time the chain starts,
// and not on restarts.
func (s *StoreApp) parseAppState(data []byte, chainID string, init piggybank.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "appState previously loaded for chain: %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrState, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}

	var appState piggybank.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := s.storeChainID(chainID); err != nil {
		return err
	}
	if init == nil {
		return nil
	}
	return init.FromGenesis(appState, s.DeliverStore())
}

// store chainID and update context
func (s *StoreApp) storeChainID(chainID string) error {
	s.chainID = chainID
	if err := saveChainID(s.DeliverStore(), s.chainID); err != nil {
		return err
	}
	s.baseContext = piggybank.WithChainID(s.baseContext, s.chainID)
	return nil
}

// WithLogger sets the logger on the StoreApp and returns it, to make it easy
// to chain in initialization. It also sets the baseContext logger.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = piggybank.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the block context for public use
func (s *StoreApp) BlockContext() piggybank.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods
func (s *StoreApp) DeliverStore() piggybank.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache for methods
func (s *StoreApp) CheckStore() piggybank.CacheableKVStore {
	return s.store.CheckStore()
}

//----------------------- ABCI ---------------------

// Info implements abci.Application. It returns the height and hash, as
// well as the abci name and version.
//
// The height is the block that holds the transactions, not the apphash
// itself.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}

	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		Version:          piggybank.Version(),
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
* Height - the block height to query (if 0 most recent)

Path may be "/<bucket>", "/<bucket>/<index>" or a custom path like
"/goals/progress". It may be followed by "?prefix" to make a prefix query.

Key and Value in Results are always serialized ResultSet objects, able to
support 0 to N values. They must be the same size.
*/
func (s *StoreApp) Query(reqQuery abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(reqQuery.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		code, _ := errors.ABCIInfo(errors.ErrNotFound, false)
		return abci.ResponseQuery{
			Code: code,
			Log:  fmt.Sprintf("unexpected query path %q, known paths: %s", reqQuery.Path, strings.Join(s.queryRouter.Paths(), ", ")),
		}
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	db := s.store.committed.CacheWrap()

	models, err := qh.Query(db, mod, reqQuery.Data)
	if err != nil {
		return s.queryError(err)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	return res
}

// splitPath splits out the real path along with the query modifier
// (everything after the ?)
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
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{
		Log:  log,
		Code: code,
	}
}

// Commit implements abci.Application
func (s *StoreApp) Commit() abci.ResponseCommit {
	commitID, err := s.store.Commit()
	if err != nil {
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
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock implements ABCI. It sets up the blockContext.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := piggybank.WithHeader(s.baseContext, req.Header)
	ctx = piggybank.WithHeight(ctx, req.Header.GetHeight())
	ctx = piggybank.WithBlockTime(ctx, req.Header.GetTime())
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock - ABCI. This application never changes the validator set.
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
