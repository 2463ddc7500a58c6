/*
Package x contains the helpers shared by all extensions: authentication of
transaction signers, the Authority abstraction used to move assets out of an
account and the ordered constraint pipeline run by handlers before they
modify the state.

Every extension lives in its own subpackage.
*/
package x
