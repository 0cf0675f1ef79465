/*
Package x contains the extensions that make up the piggybank application.

Each sub-package owns one part of the state: the token ledger, the savings
goals, the time-locked vaults and the owner wallets. Shared helpers for
authentication and amount arithmetic live in this package.

Protobuf types in exported code are prefixed by the package, so follow
standard go naming conventions and avoid stutter. Use goal.CreateMsg, not
goal.CreateGoalMsg.
*/
package x
