package libcache_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/libcache"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := libcache.Errorf(libcache.ENOTFOUND, "library %q not found", "Missing")

	assert.Equal(t, libcache.ENOTFOUND, libcache.ErrorCode(err))
	assert.Equal(t, "library \"Missing\" not found", libcache.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, libcache.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, libcache.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("resolve: %w", libcache.Errorf(libcache.EUNAVAILABLE, "no python"))

	assert.Equal(t, libcache.EUNAVAILABLE, libcache.ErrorCode(err))
	assert.Equal(t, "no python", libcache.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("permission denied")

	assert.Equal(t, libcache.EINTERNAL, libcache.ErrorCode(err))
	assert.Equal(t, "permission denied", libcache.ErrorMessage(err))
}
