package repository

// BlogListFilter narrows blog list queries.
type BlogListFilter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
}
