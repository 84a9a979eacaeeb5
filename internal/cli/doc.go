// Package cli implements bcpctl, a command-line front end to the aggregator.
//
// It runs the same lookups as the HTTP service without starting a server:
// a single nickname search, the page-scrape roster flow and the event
// placings export, each printed as text or JSON.
package cli
