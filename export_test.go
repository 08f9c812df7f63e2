package intent

var EmptyString = emptyString
