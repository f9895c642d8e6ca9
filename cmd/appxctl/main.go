// Command appxctl packs, unpacks and inspects APPX packages.
package main

func main() {
	execute()
}
