// Lyra - turn rough prompts into optimized, model-ready prompts
package main

import (
	"os"

	"github.com/HartBrook/lyra/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
