package esbuild

// LoadElm exposes loadElm for tests.
var LoadElm = loadElm
