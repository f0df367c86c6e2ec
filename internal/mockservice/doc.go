// Package mockservice provides a local stand-in for the STLC generation
// service. It accepts the same POST /chat body as the real backend and
// answers with a deterministic result bundle, which makes the form usable
// offline and gives the client an end-to-end test target.
//
// Marker words in the requirements steer the simulated run:
//
//	simulated_self_healing_needed  locator and API failures, self-healing runs
//	simulated_bug_present          assertion failures, bug reports are produced
//	simulated_service_failure      the request fails with HTTP 500
package mockservice
