package dto

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// PageQuery is the skip/limit pair shared by every list endpoint.
type PageQuery struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=1,max=1000"`
}

// ListResponse is the shape of every paginated listing. Page is 1-based and
// derived from skip/limit; Size is the number of items actually returned.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

func NewListResponse[T any](items []T, total int64, skip, limit int) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	page := 1
	if limit > 0 {
		page = skip/limit + 1
	}
	return &ListResponse[T]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  len(items),
	}
}
