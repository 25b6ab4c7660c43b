package config

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, signingSecret, appToken, apiURL string) *Slack {
	return &Slack{
		botToken:      botToken,
		signingSecret: signingSecret,
		appToken:      appToken,
		apiURL:        apiURL,
	}
}

// NewLinearForTest creates a Linear config for testing purposes
func NewLinearForTest(apiKey, endpoint string) *Linear {
	return &Linear{
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}

// NewRelayForTest creates a Relay config pointing at path
func NewRelayForTest(path string) *Relay {
	return &Relay{path: path}
}

// NewRunModeForTest creates a RunMode config with a raw value
func NewRunModeForTest(raw string) *RunMode {
	return &RunMode{raw: raw}
}

// NewLoggerForTest creates a Logger config
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}
