// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build !alloctr_notrack
// +build !alloctr_notrack

package alloctr

// default version: full allocation tracking compiled in

const allocTracking = true

const TrackingName = "track"

func init() {
	BuildTags = append(BuildTags, TrackingName)
}
