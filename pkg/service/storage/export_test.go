package storage

var ParseGCSURL = parseGCSURL
