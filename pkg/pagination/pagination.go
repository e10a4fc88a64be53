package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds page/limit pagination inputs from controllers.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the page returned to the client.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// Normalize clamps page and limit into their supported ranges.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// BuildMeta computes page metadata for a total row count.
func BuildMeta(params Params, total int64) Meta {
	n := params.Normalize()
	totalPages := int((total + int64(n.Limit) - 1) / int64(n.Limit))
	return Meta{
		CurrentPage: n.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     n.Page < totalPages,
		HasPrev:     n.Page > 1,
	}
}
