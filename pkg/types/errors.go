package types

import "errors"

// Error kinds surfaced by the codec. Call sites wrap these with fmt.Errorf
// and %w, adding block and offset context; callers classify with errors.Is
// or the helpers below.
var (
	// ErrBadFormat indicates the container cannot be parsed: too small,
	// an invalid type code, or a block that overruns the payload.
	ErrBadFormat = errors.New("bad container format")

	// ErrChecksumMismatch indicates the stored digest does not match the
	// container payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrValidation indicates a requested field value violates the field's
	// constraints and nothing was written.
	ErrValidation = errors.New("validation failed")

	// ErrUnrepairable indicates the container's digest is stale and its
	// block stream cannot be walked; rewriting the digest cannot
	// reconstruct such a container.
	ErrUnrepairable = errors.New("unrepairable container")
)

// IsBadFormat reports whether err wraps ErrBadFormat.
func IsBadFormat(err error) bool {
	return errors.Is(err, ErrBadFormat)
}

// IsChecksumMismatch reports whether err wraps ErrChecksumMismatch.
func IsChecksumMismatch(err error) bool {
	return errors.Is(err, ErrChecksumMismatch)
}

// IsValidation reports whether err wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnrepairable reports whether err wraps ErrUnrepairable.
func IsUnrepairable(err error) bool {
	return errors.Is(err, ErrUnrepairable)
}
