package dto

// PaginatedResponse is the envelope every listing endpoint returns. Items is
// never null, Total counts all rows matching the filters regardless of
// pagination, and Next links to the following page or is null on the last
// one.
type PaginatedResponse[T any] struct {
	Items []T     `json:"items"`
	Total int64   `json:"total"`
	Next  *string `json:"next"`
}

// MessageResponse represents a standard success message for API endpoints
type MessageResponse struct {
	Message string `json:"message"`
}
