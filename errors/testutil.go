package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertCode checks that err carries code, DefaultCode being the code of
// errors that were not created by this package.
func AssertCode(t *testing.T, err error, code int, msgAndArgs ...interface{}) bool {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		return false
	}
	return assert.Equal(t, code, Code(err), msgAndArgs...)
}
