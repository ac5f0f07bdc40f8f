// Package exception renders errors as "friendly" messages: a single string
// holding the error, its whole cause or aggregate chain, and an
// async-friendly stack trace in which every line break is replaced by the
// " ---> " marker. The string is meant to be attached to a structured log
// record as one field.
//
// # Model
//
// [Exception] is an explicit tagged variant:
//
//   - [KindLeaf]: no nested errors
//   - [KindWithCause]: exactly one cause ([Wrap])
//   - [KindAggregate]: an ordered list of component errors ([Aggregate])
//
// Arbitrary Go errors are converted at the boundary with [FromError], which
// understands fmt's %w wrapping, errors.Join, hashicorp/go-multierror and
// the frames recorded by github.com/pkg/errors.
//
// # Format
//
// A leaf renders as "Type" or "Type: message". A cause renders as
//
//	Outer: msg ---> Inner: msg --->    --- End of inner exception stack trace ---
//
// and each aggregate component as
//
//	Outer ---> ---> (Inner Exception #0) <component><--- --->
//
// followed, for non-aggregates, by " ---> " and the stack trace. The tokens
// are reproduced exactly so existing log queries keep matching.
//
// # Usage
//
//	err := doWork()
//	msg := exception.ToFriendlyMessage(exception.FromError(err))
//	logger.Error("work failed", "FriendlyException", msg)
package exception
