/*
Package piggybank defines the interfaces shared by the savings goal and time
lock extensions: storage, transactions, handlers, events and the request
context. Handlers in x/ only depend on this package, the errors package and
the orm. Everything that a blockchain runtime provides (consensus, signature
checks, persistence, event delivery) is plugged in by the app package.
*/
package piggybank
