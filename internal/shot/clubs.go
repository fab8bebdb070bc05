// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package shot

// clubRange maps a carry-distance floor to a club. Ranges are evaluated
// longest to shortest with a strict comparison, so a distance exactly on a
// floor falls through to the shorter, more conservative club.
type clubRange struct {
	minYards float64
	club     string
}

// clubTable holds mid-handicap carry distances. These are heuristics, not
// contracts; the estimate may be corrected downstream by a collaborator.
var clubTable = []clubRange{
	{190, "Driver"},
	{178, "3-Wood"},
	{170, "4-Iron"},
	{165, "5-Iron"},
	{160, "6-Iron"},
	{145, "7-Iron"},
	{133, "8-Iron"},
	{121, "9-Iron"},
	{100, "Pitching Wedge"},
	{70, "Sand Wedge"},
	{25, "Lob Wedge"},
}

// EstimateClub returns the club whose range covers the given carry distance.
func EstimateClub(distanceYards float64) string {
	for _, r := range clubTable {
		if distanceYards > r.minYards {
			return r.club
		}
	}
	return "Putter"
}
