/*
Package server implements the node commands: writing the application state
into a genesis file, validating a genesis file and running the abci server.
*/
package server
