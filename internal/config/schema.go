// SPDX-License-Identifier: Apache-2.0

package config

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// profileSchema is the CUE schema every profile document must satisfy.
// It stays intentionally open at the struct level so that future profile
// fields do not break older binaries; unknown fields are still rejected by
// the strict YAML decode that follows.
const profileSchema = `
name: string

table?: {
	primary_meta_lines?:   int & >=0
	secondary_meta_lines?: int & >=0
}

normalize?: {
	symbols?: {[string]: string}
	ratio_cutoff?: number & >=0
}

join?: {
	primary_key?:   [...string]
	secondary_key?: [...string]
}

decompose?: {
	column?:          string
	tier_column?:     string
	evidence_column?: string
	open?:            string
	close?:           string
	list_sep?:        string
}

tiers?: {[string]: int & >=1 & <=6}

refine?: {
	target?:           string
	default_sublabel?: string
	sublabel_sep?:     string
	rules?: [...{
		sublabel: string
		evidence?: [...string]
		field?: string
		above?: number
		below?: number
	}]
}

score?: {
	policy?: "segment-mean" | "insilico"
	column?: string
}
`

// validateSchema unifies the document with the profile schema. Any
// violation is a fatal configuration error raised before row processing.
func validateSchema(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(profileSchema)
	if err := schema.Err(); err != nil {
		return &Error{Reason: "compiling profile schema", Err: err}
	}
	file, err := cueyaml.Extract("profile.yaml", data)
	if err != nil {
		return &Error{Reason: "parsing profile document", Err: err}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &Error{Reason: "building profile document", Err: err}
	}
	// Concrete validation makes required fields (name, rule sublabels)
	// fail here, with schema-level messages, instead of surfacing later as
	// zero values.
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &Error{Reason: "profile does not satisfy schema", Err: err}
	}
	return nil
}
