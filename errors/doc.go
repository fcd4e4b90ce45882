// Package errors provides the unified error type used across seqshare.
//
// Every error raised by the library itself (as opposed to errors produced by
// a wrapped sequence) is an [*AppError] carrying a machine-readable
// [ErrorCode]. Two AppErrors compare equal under [errors.Is] when their codes
// match, so callers can test against the package sentinels:
//
//	if errors.Is(err, apperrors.ErrDisposed) { ... }
package errors
