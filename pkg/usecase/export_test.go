package usecase

// Truncate is exported for testing
var Truncate = truncate
