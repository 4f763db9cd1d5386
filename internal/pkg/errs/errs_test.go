//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"staybook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark_SentinelVisibleToStdlibIs(t *testing.T) {
	sentinel := errors.New("temporary storage conflict, retry later")
	cause := errs.New("transaction failed after max retries")

	marked := errs.Mark(cause, sentinel)

	require.ErrorIs(t, marked, sentinel)
	require.ErrorIs(t, marked, cause)
	assert.Contains(t, marked.Error(), "transaction failed after max retries")
}

func TestMark_NilCauseReturnsSentinel(t *testing.T) {
	sentinel := errors.New("validation failed")
	assert.Same(t, sentinel, errs.Mark(nil, sentinel))
}

func TestMark_WrappedCauseStaysInChain(t *testing.T) {
	sentinel := errors.New("payment declined")
	inner := errs.New("card refused")
	marked := errs.Mark(errs.Wrap(inner, "capture failed"), sentinel)

	require.ErrorIs(t, marked, sentinel)
	require.ErrorIs(t, marked, inner)
}
