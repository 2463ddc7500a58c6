/*
Package token implements fungible asset types and the accounts holding them.

An asset type is identified by the address of its Mint. Balances are kept in
asset accounts, each bound to exactly one mint and one owner. Only the owner
can move assets out of an account. The owner is either a key-held address,
authorized by a signature, or a derived address, authorized by presenting
its derivation seeds.

Every owner has one canonical account per mint, located at the address
derived from the owner and the mint, see AssociatedAddress.
*/
package token
