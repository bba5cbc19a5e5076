/*
Package observability turns wizard lifecycle hooks into metrics and logs.

Metrics registers prometheus collectors for step visits, refused transitions, submit
outcomes and submit latency. LoggingHooks writes the same events to a slog.Logger, and
Combine fans one event out to several hook sets.
*/
package observability
