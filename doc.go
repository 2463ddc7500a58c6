/*
Package custody defines the interfaces shared by all extensions of the custody
ledger: storage, transactions, handlers and decorators. It also provides the
two primitives everything else is built on: addresses and the deterministic
authority deriver.

An address is either held by a private key (an ed25519 public key) or derived
by the Deriver from a namespace and a list of seed parts. A derived address
has no private key. The only way to act on its behalf is to present the seeds
that reproduce it, see Deriver.Verify.
*/
package custody
