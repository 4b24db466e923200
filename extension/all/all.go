// Package all imports all core catalogd extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/catalogd/extension/core"
	_ "github.com/jpl-au/catalogd/extension/product"
	_ "github.com/jpl-au/catalogd/extension/search"
)
