// Package backendtest provides an in-memory stub of the monitoring backend
// for integration tests and local development. It implements the full HTTP
// surface the client consumes: POST /auth/login, GET/POST /api/threshold
// (bearer-protected), and the public GET /api/sensor-readings.
//
// Typical test setup:
//
//	stub := backendtest.New(backendtest.WithThreshold(28))
//	srv := httptest.NewServer(stub.Handler())
//	defer srv.Close()
//
//	client := apiclient.New(srv.URL, store)
package backendtest
