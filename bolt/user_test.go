package bolt

import (
	"testing"

	"github.com/bobinette/bookshelf/testutil"
)

func TestUserRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	testutil.TestUserRepository(t, &UserRepository{Driver: driver})
}
