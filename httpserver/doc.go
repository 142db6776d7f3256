/*
Package httpserver exposes the healthcare and prescription contracts over HTTP.

Each write waits for the transaction to be mined before answering, so a
successful response always reflects confirmed chain state.

# Endpoints

  - POST /api/healthcare - Register healthcare data
  - GET /api/healthcare/{hash} - Get healthcare info
  - DELETE /api/healthcare/{hash} - Delete healthcare data
  - GET /api/healthcare/events?from=N - List healthcare events
  - POST /api/prescriptions - Register a prescription
  - GET /api/prescriptions/{hash} - Get prescription info
  - POST /api/prescriptions/{hash}/use - Mark a prescription as used
  - GET /api/prescriptions/events?from=N - List prescription events
  - GET /api/history?contract=&hash=&limit= - List journaled transactions
  - GET /livez - Liveness check
  - GET /readyz - Readiness check, lists the served contracts
  - GET /drain - Gracefully mark server as not ready
  - GET /undrain - Mark server as ready

Info endpoints answer 200 for hashes that were never registered, with
status 0 (Null) and zero fields.

Healthcare hashes in paths and bodies are bytes32 strings or 0x-prefixed hex.
Prescription hashes are keccak256 of the given text unless already 0x-prefixed hex.

# Errors

Errors are returned as {"error": "..."}:

  - 400 rejected input
  - 409 duplicate registration, or a delete/use on a missing or finalized record
  - 413 request body over 1 MiB
  - 422 any other contract revert
  - 502 node or transport failure
  - 503 the contract or signer is not configured
  - 504 confirmation timed out

# Example Usage

	handler := httpserver.NewHandler(httpserver.Backends{
		Healthcare:   records.NewHealthcareService(healthcareClient, log, opts),
		Prescription: records.NewPrescriptionService(prescriptionClient, log, opts),
	}, log)

	srv, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               ":8080",
		Log:                      log,
		DrainDuration:            5 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
	}, handler)
	if err != nil {
		return err
	}
	srv.RunInBackground()
*/
package httpserver
