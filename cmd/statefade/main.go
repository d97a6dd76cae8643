// Command statefade renders grouped lists and their visual-state
// cross-fades to PNG files.
package main

func main() {
	Execute()
}
