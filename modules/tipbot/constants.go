package tipbot

const (
	Version = "v0.1.0"
)
