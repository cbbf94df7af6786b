/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension stores a single configuration object under its package name.
The configuration is loaded from the genesis file once, when the state is
created, and is read from the database whenever the application starts.
*/
package gconf
