/*
Package orm provides an easy to use db wrapper.

State space is broken into prefixed sections called buckets. Each bucket
contains only one type of model, addressed by its primary key. Buckets can be
registered with a query router so that clients can read models by key or by
key prefix.
*/
package orm
