// Command subdiv refines polygonal meshes into multi-resolution
// subdivision hierarchies.
package main

import "github.com/tessella/subdiv/cmd"

func main() {
	cmd.Execute()
}
