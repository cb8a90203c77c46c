// Command mcdocval validates Minecraft datapack JSON resources against
// MCDOC schemas, and can survey a datapack for registry dependencies or
// diff two schema revisions.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
