// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelector(t *testing.T) {
	assert := assert.New(t)

	// deterministic
	assert.Equal(NewSelector("ns.v1.get"), NewSelector("ns.v1.get"))

	// distinct names yield distinct selectors
	assert.NotEqual(NewSelector("ns.v1.get"), NewSelector("ns.v1.set"))

	// the reserved lifecycle selectors differ from each other
	assert.NotEqual(CreateSelector, OnCreateSelector)
	assert.NotZero(CreateSelector)
	assert.NotZero(OnCreateSelector)
}
