// Command server runs the wedding venue booking API and its maintenance
// commands.
package main

func main() {
	Execute()
}
