package creditstream

import "errors"

// Error kinds from the protocol's error taxonomy. DecodeUnderflow, BadUTF8,
// and LengthOverflow live in codec; MalformedCipherStream and BadPadding
// live in cipher; each package owns the errors its own contract can raise.
var (
	// ErrProtocolViolation marks a message the protocol cannot produce: the
	// consumer reports it for a data-channel message of unknown kind and
	// ends the stream. Fatal.
	ErrProtocolViolation = errors.New("creditstream: protocol violation")

	// ErrWorkerFault wraps a panic or error returned from Generator.Generate.
	// It is surfaced as an error element on the consumer's result sequence,
	// never returned directly from New.
	ErrWorkerFault = errors.New("creditstream: worker fault")

	// ErrConsumerGone is returned to the producer side when it detects the
	// consumer has stopped reading: a clean shutdown signal, not a bug.
	ErrConsumerGone = errors.New("creditstream: consumer gone")

	// ErrIllegalCall marks a producer-only method called before a
	// ProducerHandle has been installed, or from the wrong role.
	ErrIllegalCall = errors.New("creditstream: illegal call for this role")
)
