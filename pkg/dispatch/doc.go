// Package dispatch hands a rendered document to an email-campaign provider.
//
// A Dispatcher validates the request locally, then asks its Provider to
// create exactly one campaign and returns the provider's identifier together
// with the creation time. Validation failures wrap ErrConfiguration and never
// reach the network. Provider failures wrap ErrProvider and are transient: a
// later run may succeed.
//
// Every Dispatch call creates a new campaign. There is no deduplication key
// at this level; callers that must not send twice guard the call themselves.
//
// Providers:
//
//   - resend.Provider (subpackage): Resend broadcasts
//   - LogProvider: logs the campaign and returns a generated id (dry runs)
package dispatch
