package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		kind      ErrorKind
		retryable bool
	}{
		{
			name: "transaction validation",
			err:  NewTransactionError(ErrCodeInvalidTransactionAmount, "bad amount", ErrInvalidTransactionAmount),
			kind: KindValidation,
		},
		{
			name: "project validation",
			err:  NewProjectError(ErrCodeInvalidDateRange, "bad range", ErrInvalidDateRange),
			kind: KindValidation,
		},
		{
			name: "transaction not found",
			err:  NewTransactionError(ErrCodeTransactionNotFound, "missing", ErrTransactionNotFound),
			kind: KindNotFound,
		},
		{
			name:      "consistency",
			err:       NewConsistencyError(ErrCodeBalanceNotApplied, "partial", []uuid.UUID{uuid.New()}, nil),
			kind:      KindConsistency,
			retryable: true,
		},
		{
			name:      "transient wrapped by fmt",
			err:       fmt.Errorf("create: %w", NewTransientError("store down", errors.New("dial tcp"))),
			kind:      KindTransient,
			retryable: true,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			kind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestKindFromCode(t *testing.T) {
	tests := map[string]ErrorKind{
		"TXN-010001": KindValidation,
		"PRJ-020001": KindNotFound,
		"LED-030002": KindConsistency,
		"AIA-040001": KindTransient,
		"RPT-990001": KindUnknown,
		"garbage":    KindUnknown,
		"X-":         KindUnknown,
	}

	for code, want := range tests {
		if got := kindFromCode(code); got != want {
			t.Errorf("kindFromCode(%q) = %v, want %v", code, got, want)
		}
	}
}
