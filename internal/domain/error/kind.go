// Package error defines domain-specific errors for the project ledger.
package error

import (
	"errors"
	"strings"
)

// ErrorKind classifies an error by how callers should react to it.
type ErrorKind string

const (
	// KindValidation marks malformed input rejected before any store interaction.
	KindValidation ErrorKind = "validation"
	// KindNotFound marks a referenced project or transaction that does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindConsistency marks a write whose balance effect could not be confirmed.
	KindConsistency ErrorKind = "consistency"
	// KindTransient marks store or network unavailability with no partial effect.
	KindTransient ErrorKind = "transient"
	// KindUnknown is returned for errors outside the taxonomy.
	KindUnknown ErrorKind = "unknown"
)

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsRetryable reports whether the operation that produced err may be retried.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindConsistency, KindTransient:
		return true
	default:
		return false
	}
}

// kindFromCode derives the kind from the category digits of a "XXX-CCNNNN" code.
func kindFromCode(code string) ErrorKind {
	i := strings.IndexByte(code, '-')
	if i < 0 || len(code) < i+3 {
		return KindUnknown
	}

	switch code[i+1 : i+3] {
	case "01":
		return KindValidation
	case "02":
		return KindNotFound
	case "03":
		return KindConsistency
	case "04":
		return KindTransient
	default:
		return KindUnknown
	}
}
