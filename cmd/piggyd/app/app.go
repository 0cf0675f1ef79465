/*
Package app links together all the various components to construct the
piggy bank node: a token ledger, savings goals and time locked vaults.
*/
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/app"
	"github.com/iov-one/piggybank/store/iavl"
	"github.com/iov-one/piggybank/x"
	"github.com/iov-one/piggybank/x/cash"
	"github.com/iov-one/piggybank/x/goal"
	"github.com/iov-one/piggybank/x/sigs"
	"github.com/iov-one/piggybank/x/timelock"
	"github.com/iov-one/piggybank/x/token"
	"github.com/iov-one/piggybank/x/utils"
)

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the message
		// fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all message handlers of the node.
func Router(authFn x.Authenticator, ids goal.IDSource) *app.Router {
	r := app.NewRouter()
	token.RegisterRoutes(r, authFn)
	goal.RegisterRoutes(r, authFn, ids)
	timelock.RegisterRoutes(r, authFn, cash.NewController())
	return r
}

// QueryRouter returns a default query router, allowing access to "/wallets",
// "/auth", "/tokens", "/goals", "/goals/progress" and "/locks".
func QueryRouter() piggybank.QueryRouter {
	r := piggybank.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		token.RegisterQuery,
		goal.RegisterQuery,
		timelock.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator chain. This
// can be passed into BaseApp.
func Stack() piggybank.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, goal.NewGoalCounter()))
}

// Initializers returns all genesis initializers of the node.
func Initializers() piggybank.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
		goal.Initializer{},
	)
}

// Application constructs a basic ABCI application with the given arguments.
// If you are not sure what to use for the Handler, just use Stack(). sink
// receives events after every commit and can be nil.
func Application(name string, h piggybank.Handler, tx piggybank.TxDecoder,
	dbPath string, sink piggybank.EventSink, debug bool) (*app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	return app.NewBaseApp(store, tx, h, sink, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path.
func CommitKVStore(dbPath string) (piggybank.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
