package transitions

import "errors"

// ErrMissingHandler is a programmer error: a mandatory cast/sacrifice
// handler is absent for a card the oracle says is castable/sacrificeable,
// or a non-land was passed to Play. Fatal to the trial.
var ErrMissingHandler = errors.New("transitions: missing mandatory card handler")

// ErrUnsupported marks a request the engine deliberately does not model,
// e.g. scrying more than one card. Fatal to the trial.
var ErrUnsupported = errors.New("transitions: unsupported state")
