/*
 * Copyright 2018- The Pixie Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVersion(t *testing.T) {
	v := newVersion("1.2.3", "abcdef0123456", "Clean", "1600000000", "ci")

	assert.Equal(t, "1.2.3+Clean.abcdef0.20200913122640", v.ToString())
	assert.False(t, v.IsDev())
	assert.Equal(t, "abcdef0123456", v.Revision())

	info := v.Info()
	assert.Equal(t, "1.2.3+Clean.abcdef0.20200913122640", info.Version)
	assert.Equal(t, "Clean", info.Status)
	assert.Equal(t, "ci", info.BuiltBy)
}

func TestNewVersion_Defaults(t *testing.T) {
	v := newVersion("not-a-version", "abc", "Modified", "garbage", "Unknown")

	assert.True(t, v.IsDev())
	assert.Equal(t, "0.0.0-dev+Modified.0000000.19700101000000", v.ToString())
}

func TestGetVersion(t *testing.T) {
	assert.True(t, GetVersion().IsDev())
}
