package v1

// URIID is the URI binding for routes addressing a single resource.
type URIID struct {
	ID uint64 `uri:"id" binding:"required"` // ID of the resource
}
