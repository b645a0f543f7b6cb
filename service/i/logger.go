package i

// Logger is the leveled logger every component writes through.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Debug(msg string)
}
