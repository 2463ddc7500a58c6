/*
Package app contains the building blocks of the ledger ABCI application:
the message router, decorator chaining, the commit store managing check and
deliver caches, and the StoreApp/BaseApp pair implementing abci.Application.
*/
package app
