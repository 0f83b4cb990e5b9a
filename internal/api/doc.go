// Package api exposes the logging backend over HTTP so processes that cannot
// link the library can still submit messages. Requests are validated, turned
// into messages from the named source and enqueued on the shared channel;
// the response never waits for the worker to write the line.
package api
