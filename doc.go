// Package wsbridge bridges callback-driven event sources into ordinary Go
// channel and value plumbing.
//
// It provides two independent primitives. Once adapts a "register a callback,
// the callback fires later" API into a channel that resolves exactly once, no
// matter how often the source fires. Classify turns the loosely typed payload
// attached to an inbound event into a Message that is either text or binary,
// reporting payloads outside those two shapes as distinct errors instead of
// guessing.
//
// The primitives share no state and are composed by callers: adapt the
// source's lifecycle callbacks with Once (or Wait), then hand each arriving
// payload to Classify. The package performs no I/O and no logging; wiring a
// concrete transport behind the callbacks is the consumer's job.
package wsbridge
