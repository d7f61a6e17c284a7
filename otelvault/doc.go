// Package otelvault decorates a promptvault.Vault with OpenTelemetry spans.
// Every Save, Load and List runs inside a span carrying the template name and
// versions; failures are recorded on the span and returned unchanged.
package otelvault
