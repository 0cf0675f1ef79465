/*
Package timelock implements vaults that cannot be emptied before a given
time.

A vault is created by its owner with an unlock time that must be in the
future. Anybody can deposit into a vault at any time. Once the unlock time
is reached, the owner can withdraw. A withdrawal credits the whole balance
to the owner's cash wallet and destroys the vault.
*/
package timelock
