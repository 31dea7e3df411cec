// The main package for the llmstxt-archiver executable.
package main

import (
	"github.com/JakeFAU/llmstxt-archiver/cmd"
)

func main() {
	cmd.Execute()
}
