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
	"strconv"
	"time"

	"github.com/blang/semver"
)

// Variables loaded from -ldflags -X at link time. Default values specified.
var (
	buildSCMRevision = "0000000"
	buildSCMStatus   = "Modified"
	// Tracks the semver string X.Y.Z-(pre)+build
	buildSemver    = "0.0.0-dev"
	buildTimeStamp = "0"
	builtBy        = "Unknown"
)

var versionInstance *Version

// Version contains the build revision/time/status information.
type Version struct {
	revision  string
	status    string
	semver    semver.Version
	timestamp time.Time
	builtBy   string
}

// Info is the serializable form of a Version.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Status    string `json:"status"`
	BuildTime string `json:"build_time"`
	BuiltBy   string `json:"built_by"`
}

func init() {
	versionInstance = newVersion(buildSemver, buildSCMRevision, buildSCMStatus, buildTimeStamp, builtBy)
}

func newVersion(sv, revision, status, ts, by string) *Version {
	tUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		tUnix = 0
	}
	t := time.Unix(tUnix, 0)

	v, err := semver.Parse(sv)
	if err != nil {
		v = semver.MustParse("0.0.0-dev")
	}

	// Short git revisions are 7 characters.
	short := "0000000"
	if len(revision) >= 7 {
		short = revision[:7]
	}
	v.Build = []string{status, short, t.UTC().Format("20060102150405")}

	return &Version{
		revision:  revision,
		status:    status,
		semver:    v,
		timestamp: t,
		builtBy:   by,
	}
}

// Revision returns the revision string.
func (v *Version) Revision() string {
	return v.revision
}

// BuildTimestamp returns the build timestamp as a UTC string.
func (v *Version) BuildTimestamp() string {
	return v.timestamp.UTC().String()
}

// ToString returns the semver string.
func (v *Version) ToString() string {
	return v.semver.String()
}

// Semver returns the semantic version.
func (v *Version) Semver() semver.Version {
	return v.semver
}

// IsDev returns true if dev build.
func (v *Version) IsDev() bool {
	s := v.semver
	return s.Major == 0 && s.Minor == 0 && s.Patch == 0
}

// Info returns the build information.
func (v *Version) Info() Info {
	return Info{
		Version:   v.ToString(),
		Revision:  v.revision,
		Status:    v.status,
		BuildTime: v.BuildTimestamp(),
		BuiltBy:   v.builtBy,
	}
}

// GetVersion returns the current version instance.
func GetVersion() *Version {
	return versionInstance
}
