/*
Package app wires all extensions into a single donation engine and runs every
operation as an atomic unit.

Each operation is executed on a cache wrap of the committed store. If it
succeeds, the cache is written and the store committed. Otherwise everything
is discarded. Events collected during the operation are persisted in the
journal and published to subscribers only after a successful commit.
*/
package app
