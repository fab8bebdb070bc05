// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package shot

import "testing"

func TestEstimateClub(t *testing.T) {
	tests := []struct {
		yards float64
		want  string
	}{
		{250, "Driver"},
		{200, "Driver"},
		{191, "Driver"},
		{190, "3-Wood"}, // exact floor falls to the shorter club
		{185, "3-Wood"},
		{178, "4-Iron"},
		{172, "4-Iron"},
		{168, "5-Iron"},
		{162, "6-Iron"},
		{160, "7-Iron"}, // exact floor falls to the shorter club
		{150, "7-Iron"},
		{140, "8-Iron"},
		{130, "9-Iron"},
		{110, "Pitching Wedge"},
		{100, "Sand Wedge"}, // exact floor falls to the shorter club
		{80, "Sand Wedge"},
		{40, "Lob Wedge"},
		{25, "Putter"},
		{10, "Putter"},
		{0, "Putter"},
	}

	for _, tt := range tests {
		if got := EstimateClub(tt.yards); got != tt.want {
			t.Errorf("EstimateClub(%v) = %q, want %q", tt.yards, got, tt.want)
		}
	}
}
