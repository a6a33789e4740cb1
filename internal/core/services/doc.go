// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every service that sends authorised calls shares one *Session, which
// holds the token for the lifetime of the process.
package services
