// Package main (cmd/httpserver) serves the healthcare and prescription
// contracts over HTTP for browser front-ends.
//
// The network is chosen with --network; without it the server dials RPC_URL
// (--rpc-url, the environment or .env, default http://localhost:8545).
// Contracts without a configured address are disabled rather than fatal. Without a signing
// identity the server still answers reads; writes fail with 503.
//
// Example usage against a local Hardhat node:
//
//	httpserver --network local --listen-addr 127.0.0.1:8080 --journal ./data/journal.db
//
// Example usage without a node:
//
//	httpserver --dry-run
package main
