// Package interfaces defines core interfaces and types for the healthcare and
// prescription contract clients, separating interface definitions from
// implementations.
//
// # Registry Interfaces
//
// HealthcareRegistry: client view of the Healthcare contract. Records move
// Null → Registered → Deleted; the contract enforces the transitions.
//
// PrescriptionRegistry: client view of the Prescription contract. Prescriptions
// move Null → Registered → Used.
//
// Both interfaces split synchronous reads from writes that return a pending
// transaction, which must be awaited with WaitMined.
//
// # Artifact Interfaces
//
// ArtifactSource: read access to contract build artifacts across file, S3 and
// IPFS locations, used to verify the deployed ABI against the compiled-in one.
//
// # Errors
//
// Errors fall into three groups: configuration errors (fatal at startup),
// ErrValidation (user input, session continues) and remote/contract errors
// (reverts, failed receipts, transport), all matched with errors.Is.
package interfaces
