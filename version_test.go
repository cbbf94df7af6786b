package charity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/charity"
)

func TestVersion(t *testing.T) {
	defer func(c string) { charity.GitCommit = c }(charity.GitCommit)

	charity.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", charity.Version())

	charity.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", charity.Version())
}
