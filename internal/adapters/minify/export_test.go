package minify

// CompressOptions exposes compressOptions for tests.
var CompressOptions = compressOptions
