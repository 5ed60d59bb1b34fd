// Command gridsim runs the grid world simulation.
package main

func main() {
	Execute()
}
