package core

// Logger is any service that can log messages.
// args may carry errors, maps of extra data and the current session user.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Notifier shows ephemeral notifications and the loading state.
type Notifier interface {
	Toast(kind ToastKind, msg string)
	Loading(show bool)
}
