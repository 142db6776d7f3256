// Package clientcommon wires configuration, node connection, signer,
// artifact verification and journal into the record services used by the
// command-line binaries.
package clientcommon
