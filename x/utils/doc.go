/*
Package utils contains the decorators shared by every application: panic
recovery, logging, metrics, action tagging and savepoints.
*/
package utils
