// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	v := Current()
	is.Equal("0.1.0", v.Version)
	is.Equal("Release", v.Build)
	is.NotEmpty(v.System)
	is.NotEmpty(v.Arch)
	is.NotEmpty(v.FeatureList)
}
