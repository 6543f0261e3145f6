package storage

// ReportWriter is the interface any artifact storage backend must satisfy.
type ReportWriter interface {
	WriteJSON(name string, payload any) error
}
