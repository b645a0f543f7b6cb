package config

// Level colors used by the logger.
const (
	LogErrorColor = "\033[31m"
	LogInfoColor  = "\033[32m"
	LogWarnColor  = "\033[33m"
	LogDebugColor = "\033[90m"
	LogColorReset = "\033[0m"
)

// Prefix colors, one per component logger: APP, RUN-MANAGER, API and SIM.
const (
	ColorGreen   = "\033[32m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorReset   = LogColorReset
)
