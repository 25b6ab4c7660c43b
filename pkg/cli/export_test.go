package cli

var PrintResolutions = printResolutions
