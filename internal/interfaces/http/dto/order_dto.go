package dto

// SourcesRequest carries the raw sources of an order, highest priority first
type SourcesRequest struct {
	Sources []any `json:"sources" binding:"required,min=1"`
}

// ParseLinesRequest carries serialized draft lines
type ParseLinesRequest struct {
	Payload string `json:"payload"`
}

// TargetURI binds the :target path parameter
type TargetURI struct {
	Target string `uri:"target" binding:"required,alpha"`
}
