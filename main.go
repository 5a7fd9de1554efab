// xxh prints xxHash64 checksums of files while showing live hashing progress
package main

import "xxh/cmd"

func main() {
	cmd.Execute()
}
