package domain

// Metadata key names shared by strategies and API clients.
const (
	MetaTotalNodes        = "total_nodes"
	MetaSourceNodes       = "source_nodes"
	MetaActualDepth       = "actual_depth"
	MetaRequestedMaxDepth = "requested_max_depth"
	MetaEdgeCount         = "edge_count"
	MetaDecisionCount     = "decision_count"
	MetaDirection         = "direction"
	MetaDomain            = "domain"
)

// GenerationResult is the output of a successful strategy run. It is treated
// as immutable once produced; use Clone before handing it to another owner.
type GenerationResult struct {
	Kind     Kind           `json:"visualization_type"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// Clone returns a copy whose metadata map is not shared with r.
func (r *GenerationResult) Clone() *GenerationResult {
	if r == nil {
		return nil
	}
	return &GenerationResult{
		Kind:     r.Kind,
		Content:  r.Content,
		Metadata: CloneMetadata(r.Metadata),
	}
}

// CloneMetadata copies a metadata map. Values are scalars, so a shallow copy
// is sufficient.
func CloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
