package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/lint"
	"github.com/marcusbikes/storefront/pkg/output"
)

func main() {
	// Parse command-line flags
	dir := flag.String("catalog", "./catalog", "Path to the catalog directory")
	flag.Parse()

	cat, err := catalog.LoadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	issues := lint.CheckCatalog(cat)
	output.PrintLintReport(*dir, cat, issues)

	if lint.Errors(issues) {
		os.Exit(1)
	}
}
