// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Knowledge is a persisted publication with bibliographic metadata and
// an optional binary attachment.
type Knowledge struct {
	// ID is an opaque identifier minted once at creation, never reused.
	ID string `json:"id" yaml:"id"`

	// Authors lists author names in extraction order, duplicates preserved.
	Authors []string `json:"authors" yaml:"authors"`

	// CreationDate is the publication year. Zero when the source page
	// carried no parseable date.
	CreationDate int `json:"creationDate" yaml:"creationDate"`

	// IssuerID is the issuing identifier (e.g. an ISSN). May be empty.
	IssuerID string `json:"issuerId" yaml:"issuerId"`

	// Summary is the abstract text. May be empty.
	Summary string `json:"summary" yaml:"summary"`

	// Title is the publication title. May be empty.
	Title string `json:"title" yaml:"title"`

	// Type is the publication type string. May be empty.
	Type string `json:"type" yaml:"type"`

	// File is the binary attachment. Present only at creation time; it
	// is stored once and never included in listing or search responses.
	File []byte `json:"-" yaml:"-"`
}

// Author is a persisted contributor. Name acts as the identity key:
// two extractions of the same name string collapse to one Author, so
// distinct people sharing a name are conflated. Documented limitation.
type Author struct {
	// ID is minted at the first sighting of the name.
	ID string `json:"id" yaml:"id"`

	// Name is the author name exactly as extracted.
	Name string `json:"name" yaml:"name"`
}

// Recommendation is a Knowledge record ranked by co-authorship overlap
// with a source record.
type Recommendation struct {
	Knowledge `yaml:",inline"`

	// SharedAuthors counts the distinct authors shared with the source.
	SharedAuthors int `json:"sharedAuthors" yaml:"sharedAuthors"`
}
