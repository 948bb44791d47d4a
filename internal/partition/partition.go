// Package partition separates rows that are dropped before validation (fully
// empty rows and exact repeats) from the rows that go on to be validated.
package partition

import (
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

// Outcome holds the views produced by Split. Each slice refers to records of
// the source dataset and must be treated as read-only.
type Outcome struct {
	// Empty holds rows whose every column is null or blank.
	Empty []types.Record

	// Duplicates holds rows equal to an earlier row on every column. The first
	// occurrence is not included.
	Duplicates []types.Record

	// Discarded is Empty followed by Duplicates. A blank row that repeats an
	// earlier blank row appears in both groups and therefore twice here.
	Discarded []types.Record

	// Candidates holds rows that are neither empty nor duplicates, in source
	// order.
	Candidates []types.Record

	// CandidateIndex maps each candidate to its index in the source dataset.
	CandidateIndex []int

	// overlap counts rows that are both empty and duplicates.
	overlap int
}

// Removed returns the number of distinct source rows dropped by the split.
func (o Outcome) Removed() int {
	return len(o.Empty) + len(o.Duplicates) - o.overlap
}

// Split partitions ds. Emptiness and duplication are tested independently over
// every column in ds.Header.
func Split(ds *types.Dataset) Outcome {
	var out Outcome
	seen := make(map[string]struct{}, ds.Len())

	for i, rec := range ds.Records {
		empty := rec.IsBlank(ds.Header)

		key := rec.Key(ds.Header)
		_, dup := seen[key]
		if !dup {
			seen[key] = struct{}{}
		}

		if empty {
			out.Empty = append(out.Empty, rec)
		}
		if dup {
			out.Duplicates = append(out.Duplicates, rec)
		}
		if empty && dup {
			out.overlap++
		}
		if !empty && !dup {
			out.Candidates = append(out.Candidates, rec)
			out.CandidateIndex = append(out.CandidateIndex, i)
		}
	}

	out.Discarded = make([]types.Record, 0, len(out.Empty)+len(out.Duplicates))
	out.Discarded = append(out.Discarded, out.Empty...)
	out.Discarded = append(out.Discarded, out.Duplicates...)

	return out
}
