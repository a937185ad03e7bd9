package output

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/lint"
)

// PrintLintReport prints a colorized catalog check report to the console
func PrintLintReport(dir string, cat *catalog.Catalog, issues []lint.Issue) {
	// Color definitions
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Println("Storefront Catalog Check")
	bold.Println("========================")
	fmt.Printf("Catalog: %s\n", dir)
	fmt.Printf("Products: %d\n", len(cat.Products))
	fmt.Printf("Inventory records: %d\n", len(cat.Inventory))
	fmt.Println()

	if len(issues) == 0 {
		green.Println("No issues found")
		return
	}

	var errors, warnings int
	for _, issue := range issues {
		if issue.Severity == lint.SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	if errors > 0 {
		red.Printf("Errors: %d\n", errors)
	}
	if warnings > 0 {
		yellow.Printf("Warnings: %d\n", warnings)
	}
	fmt.Println()

	for _, issue := range issues {
		if issue.Severity == lint.SeverityError {
			red.Printf("  [%s] %s\n", issue.Check, issue.Severity)
		} else {
			yellow.Printf("  [%s] %s\n", issue.Check, issue.Severity)
		}
		if issue.ProductID != "" {
			cyan.Printf("    Product: %s\n", issue.ProductID)
		}
		fmt.Printf("    %s\n", issue.Message)
		fmt.Println()
	}

	summaryColor := yellow
	if errors > 0 {
		summaryColor = red
	}
	summaryColor.Printf("Summary: %d issue(s) in %d product(s)\n", len(issues), len(cat.Products))
}
