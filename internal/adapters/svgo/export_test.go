package svgo

// ShortID exports shortID for testing.
var ShortID = shortID
