package comm

// Tags of the solver's message streams.
const (
	TagNorthbound Tag = iota + 1
	TagSouthbound
	TagReduce
	TagGather
	TagSummary
)

// String returns the name of the tag.
func (t Tag) String() string {
	switch t {
	case TagNorthbound:
		return "northbound"
	case TagSouthbound:
		return "southbound"
	case TagReduce:
		return "reduce"
	case TagGather:
		return "gather"
	case TagSummary:
		return "summary"
	default:
		return "custom"
	}
}
