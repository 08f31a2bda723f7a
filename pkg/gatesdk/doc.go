// Package gatesdk is a Go client for the AuthGate authentication
// gateway. It wraps the login, MFA and directory endpoints and parses
// error responses into typed errors.
//
// The types in this package double as the wire format: the gateway's
// HTTP handlers encode them, and the client decodes them.
package gatesdk
