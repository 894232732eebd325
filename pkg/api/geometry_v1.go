package api

// GeometryV1 is the stable JSON schema for a compiled geometry description.
type GeometryV1 struct {
	Geometry   string          `json:"geometry"`
	Read1      ReadMatchV1     `json:"read1"`
	Read2      ReadMatchV1     `json:"read2"`
	Simplified string          `json:"simplified_geometry"`
	Preview    []PairPreviewV1 `json:"preview"`
}

// ReadMatchV1 describes one read's compiled matcher.
type ReadMatchV1 struct {
	Pattern  string   `json:"pattern"`
	Captures []string `json:"captures"`
	MinLen   int      `json:"min_length"`
}

// PairPreviewV1 is one parsed (or rejected) read pair.
type PairPreviewV1 struct {
	Name1  string `json:"name1"`
	Name2  string `json:"name2"`
	Parsed bool   `json:"parsed"`
	Seq1   string `json:"seq1,omitempty"`
	Seq2   string `json:"seq2,omitempty"`
}
