// biotext converts biological record files between textual formats
// and fetches UniProt entries.
package main

import "github.com/tlunder/biotext/cmd/biotext/cmd"

func main() {
	cmd.Execute()
}
