// Package schemas embeds the JSON Schemas of the matching input and output documents.
package schemas

import "embed"

// Schema file names
const (
	CandidateProfile = "candidate_profile.schema.json"
	JobRequirements  = "job_requirements.schema.json"
	MatchResult      = "match_result.schema.json"
)

// FS holds every *.schema.json file of this directory.
//
//go:embed *.schema.json
var FS embed.FS
