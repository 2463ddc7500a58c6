/*
Package server contains the node commands shared by ledger binaries: init
writes the application genesis state, start runs the ABCI server with the
node configuration loaded from file, environment and flags.
*/
package server
