// Copyright (c) 2025, restic-exporter authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshot

import (
	"strconv"
	"strings"
	"time"
)

// timeLayout is the fixed date+time format restic uses in its snapshots table.
const timeLayout = "2006-01-02 15:04:05"

// sizeUnits maps IEC size units to their byte multipliers.
var sizeUnits = map[string]float64{
	"B":   1,
	"KiB": 1 << 10,
	"MiB": 1 << 20,
	"GiB": 1 << 30,
	"TiB": 1 << 40,
}

// Record is one parsed row of the restic snapshots table.
// Records are ephemeral: created fresh each polling cycle and discarded after
// being folded into the metrics registry.
type Record struct {
	// ID is the short opaque snapshot identifier.
	ID string

	// Timestamp is the snapshot time as Unix epoch seconds, 0 if the
	// date+time columns could not be parsed.
	Timestamp int64

	// Host is the hostname the snapshot was taken on.
	Host string

	// Tags is the raw tags column as restic formats it (comma-joined when
	// multiple tags are present).
	Tags string

	// Directory is the backed-up path.
	Directory string

	// SizeBytes is the snapshot size converted to bytes, 0 on any size
	// parse failure.
	SizeBytes float64
}

// Parse converts the raw stdout of `restic snapshots` into an ordered slice
// of records, matching line order in the input.
//
// Header lines (starting with "ID"), separator lines (starting with "---"),
// and blank lines are skipped. Remaining lines are whitespace-split; lines
// with fewer than 6 fields are dropped. A malformed size or date within a
// line never fails the parse, the affected value defaults to 0.
func Parse(raw string) []Record {
	var records []Record

	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "ID") || strings.HasPrefix(line, "---") || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}

		// Columns: id, date, time, host, tags, directory, size...
		// The size column may span multiple fields ("3.419 GiB").
		records = append(records, Record{
			ID:        fields[0],
			Timestamp: toUnixTimestamp(fields[1] + " " + fields[2]),
			Host:      fields[3],
			Tags:      fields[4],
			Directory: fields[5],
			SizeBytes: parseSize(strings.Join(fields[6:], " ")),
		})
	}

	return records
}

// parseSize converts a human-readable size string ("3.419 GiB") to bytes.
// The string must split into exactly two tokens, a numeric value and a unit.
// An unrecognized unit uses multiplier 1; any other malformation yields 0.
func parseSize(s string) float64 {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0
	}

	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}

	multiplier, ok := sizeUnits[parts[1]]
	if !ok {
		multiplier = 1
	}
	return value * multiplier
}

// toUnixTimestamp converts a "YYYY-MM-DD HH:MM:SS" string to Unix epoch
// seconds, interpreting it in the local time zone as restic prints it.
// Returns 0 if the string does not match the layout.
func toUnixTimestamp(s string) int64 {
	t, err := time.ParseInLocation(timeLayout, s, time.Local)
	if err != nil {
		return 0
	}
	return t.Unix()
}
