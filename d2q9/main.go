// Command d2q9 runs the parallel D2Q9 lattice-Boltzmann solver.
package main

import "github.com/sarchlab/d2q9/d2q9/cmd"

func main() {
	cmd.Execute()
}
