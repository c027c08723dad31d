// SPDX-License-Identifier: Apache-2.0

// Package genomic defines the genomic record types shared by the pipeline
// stages and the coordinate normalizer that canonicalizes raw segmentation
// output.
package genomic

import "fmt"

// Call types for copy-number and small-variant records.
const (
	TypeDup = "DUP"
	TypeDel = "DEL"
	TypeSNV = "SNV"
	TypeIns = "INS"
)

// Record identifies one called variant or copy-number segment.
// Records are immutable once created: stages derive new records rather than
// mutating in place.
type Record struct {
	Chrom string
	// Start and End are the half-open interval in base pairs; End > Start
	// always holds for a constructed Record.
	Start int64
	End   int64
	// Type is the call type (DUP, DEL, SNV, INS, or an upstream symbol
	// passed through unchanged).
	Type string
	// Ref and Alt are set for small variants only.
	Ref string
	Alt string
	// Value is the numeric summary attached by the segmenter, typically a
	// log copy-ratio or segment mean.
	Value float64
}

func (r Record) String() string {
	return fmt.Sprintf("%s:%d-%d %s", r.Chrom, r.Start, r.End, r.Type)
}

// Length returns the interval length in base pairs.
func (r Record) Length() int64 {
	return r.End - r.Start
}

// IsCNV reports whether the record is a copy-number call.
func (r Record) IsCNV() bool {
	return r.Type == TypeDup || r.Type == TypeDel
}
