/*
Package vault implements a single party vault of native balance.

Every owner has exactly one vault, located at the address derived from the
owner. Only the owner can deposit into or withdraw from it, and withdrawals
are authorized by presenting the vault seeds, since no key holds the vault
address.
*/
package vault
