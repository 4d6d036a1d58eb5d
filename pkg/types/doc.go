// Package types defines the core types and interfaces used throughout anvil.
// This includes the FS filesystem abstraction as well as the Context,
// Arrangement and Source types the expansion pipeline is built on.
package types
