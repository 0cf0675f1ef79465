/*
Package app contains the ABCI application wiring: the StoreApp that manages
the committed state and queries, the BaseApp that dispatches transactions,
the message Router and the decorator chain.

BaseApp keeps the events returned by successful transactions of the current
block and publishes them to the configured sink after Commit.
*/
package app
