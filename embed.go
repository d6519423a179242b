package hostenv

import (
	_ "embed"
)

// BuiltinFixturesYAML is the fixture suite shipped with the binary.
//
//go:embed embedded/fixtures.yaml
var BuiltinFixturesYAML []byte
