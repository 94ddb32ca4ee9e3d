// Ember is the offline companion tool of the ember engine's resource
// runtime: it packs compiled resources into archive bundles and
// inspects existing ones.
package main

import (
	"github.com/ember-engine/ember/cmd"

	// Pull in the subcommands.
	_ "github.com/ember-engine/ember/cmd/cat"
	_ "github.com/ember-engine/ember/cmd/ls"
	_ "github.com/ember-engine/ember/cmd/pack"
	_ "github.com/ember-engine/ember/cmd/seed"
)

func main() {
	cmd.Main()
}
