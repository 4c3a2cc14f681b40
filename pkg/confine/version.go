package confine

import "github.com/seekerror/build"

// Version identifies this solver build, surfaced by cmd/confine and
// cmd/boundedeval the same way pkg/engine.version is surfaced by
// Engine.Name().
var Version = build.NewVersion(0, 1, 0)
