package slack

// FallbackText is exported for testing
var FallbackText = fallbackText
