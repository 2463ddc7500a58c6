/*
Package escrow implements a two party swap of two asset types.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

Here the third party is the program itself. The maker deposits assets of one
type into a vault and asks for an amount of another type in return. The
vault is owned by the escrow address, which is derived from the maker and a
seed chosen by the maker, so no private key can ever move the deposit. The
program moves it by presenting the derivation seeds again.

An escrow is open from make until either take or refund succeeds. Take pays
the maker and hands the whole vault to the taker. Refund hands the whole
vault back to the maker. Both close the vault and delete the record, so a
closed escrow is simply one that is not in the store anymore.

Every transition runs an ordered list of constraints before it changes any
state. Transitions must run within a savepoint, so that a failure in any of
their steps leaves no partial effect.
*/
package escrow
