/*
Package cash keeps the native balance of every address, counted in lamports.

Native balance pays for storage: creating a record or an asset account
locks a fixed rent amount that is returned once the record or account is
closed.
*/
package cash
