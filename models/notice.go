package models

type NoticeVariant string

const (
	NoticeError   NoticeVariant = "error"
	NoticeWarning NoticeVariant = "warning"
)

// Notice is a transient user-facing notification (snackbar).
type Notice struct {
	Variant NoticeVariant `json:"variant"`
	Message string        `json:"message"`
}
