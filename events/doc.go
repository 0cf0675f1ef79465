/*
Package events provides sinks for the notifications produced by handlers.

Handlers return events as part of the DeliverResult. The application keeps
the events of every successful transaction and hands them to a sink only
after the block is committed, so a sink never sees an event of a reverted
state change. Publishing is fire and forget: the application logs sink
errors and carries on.

Available sinks are the in-process Observers, LogSink writing to a
tendermint logger and SQLSink archiving events in sqlite or postgres. Use
Multi to publish to more than one sink.
*/
package events
