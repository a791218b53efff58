// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPopulatesFields(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	p := Current()
	is.NotEmpty(p.System)
	is.NotEmpty(p.Arch)
	is.Contains([]int{32, 64}, p.WordSize)
	is.NotEmpty(p.Features)
}
