/*
Package token implements a single fungible token ledger.

The ledger is one TokenAccount that records who is allowed to mint and the
total supply issued so far. The account is created once, either by an
InitializeMsg signed by the owner or from the genesis file. Only the owner
can mint afterwards. Minting increases the supply and emits a MintEvent
naming the recipient.
*/
package token
