package port

// Notifier receives user-facing messages of the current request.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
