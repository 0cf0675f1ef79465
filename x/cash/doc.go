/*
Package cash keeps the spendable balance of every owner.

Funds land here when a time-locked vault is drained. There is no logic in
the balances except that they never overflow.
*/
package cash
