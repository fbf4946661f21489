// Command evals inspects the MCP tool selection evaluation suites.
//
// Usage:
//
//	go run ./cmd/evals -dir ./evals -suite all
//
// The suites are data for an LLM harness implementing evals.ToolSelector;
// this command loads them, cross-checks them against the registered tool
// catalog, and reports what the suites cover. For actual LLM evaluation,
// wire the evals package into your LLM testing framework and run
// EvaluateToolSelection, EvaluateConfusionPairs, and EvaluateArguments.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/olgasafonova/growi-mcp-server/evals"
	"github.com/olgasafonova/growi-mcp-server/tools"
)

func main() {
	dir := flag.String("dir", "./evals", "Directory containing eval JSON files")
	suite := flag.String("suite", "all", "Suite to report: tool_selection, confusion_pairs, arguments, or all")
	verbose := flag.Bool("verbose", false, "Show individual test cases")
	flag.Parse()

	fmt.Println("Growi MCP Server - Evaluation Suites")
	fmt.Println()

	toolSelection, confusionPairs, arguments, err := evals.LoadAllEvals(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading evals from %s: %v\n", *dir, err)
		os.Exit(1)
	}

	switch *suite {
	case "tool_selection":
		reportToolSelection(toolSelection, *verbose)
	case "confusion_pairs":
		reportConfusionPairs(confusionPairs, *verbose)
	case "arguments":
		reportArguments(arguments, *verbose)
	case "all":
		reportToolSelection(toolSelection, *verbose)
		reportConfusionPairs(confusionPairs, *verbose)
		reportArguments(arguments, *verbose)
		reportCoverage(toolSelection, confusionPairs, arguments)
	default:
		fmt.Fprintf(os.Stderr, "Unknown suite: %s\n", *suite)
		os.Exit(1)
	}
}

func reportToolSelection(suite *evals.ToolSelectionSuite, verbose bool) {
	fmt.Printf("Tool selection: %s (v%s), %d tests\n", suite.Name, suite.Version, len(suite.Tests))

	perTool := make(map[string]int)
	for _, test := range suite.Tests {
		perTool[test.ExpectedTool]++
	}
	for _, spec := range tools.AllTools {
		fmt.Printf("  %-15s %d\n", spec.Name, perTool[spec.Name])
	}

	if verbose {
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %q -> %s", test.ID, test.Input, test.ExpectedTool)
			if len(test.NotTools) > 0 {
				fmt.Printf(" (never %v)", test.NotTools)
			}
			fmt.Println()
		}
	}
	fmt.Println()
}

func reportConfusionPairs(suite *evals.ConfusionPairSuite, verbose bool) {
	total := 0
	for _, pair := range suite.Pairs {
		total += len(pair.Tests)
	}
	fmt.Printf("Confusion pairs: %s (v%s), %d pairs, %d tests\n", suite.Name, suite.Version, len(suite.Pairs), total)

	for _, pair := range suite.Pairs {
		fmt.Printf("  %s vs %s: %s (%d tests)\n", pair.Tools[0], pair.Tools[1], pair.Disambiguation, len(pair.Tests))
		if verbose {
			for _, test := range pair.Tests {
				fmt.Printf("    %q -> %s: %s\n", test.Input, test.Expected, test.Reason)
			}
		}
	}
	fmt.Println()
}

func reportArguments(suite *evals.ArgumentSuite, verbose bool) {
	fmt.Printf("Argument correctness: %s (v%s), %d tests\n", suite.Name, suite.Version, len(suite.Tests))

	rules := suite.ValidationRules
	fmt.Printf("  path: %s\n", rules.PathFormat)
	fmt.Printf("  id: %s\n", rules.IDFormat)
	fmt.Printf("  body: %s\n", rules.BodyHandling)
	fmt.Printf("  overwrite: %s\n", rules.OverwritePolicy)

	if verbose {
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s %q required=%v", test.ID, test.Tool, test.Input, test.RequiredArgs)
			if len(test.ForbiddenArgs) > 0 {
				fmt.Printf(" forbidden=%v", test.ForbiddenArgs)
			}
			fmt.Println()
		}
	}
	fmt.Println()
}

// reportCoverage cross-checks the suites against the registered tool
// catalog: every registered tool should appear in every suite kind, and
// the suites must not reference tools the server does not register.
func reportCoverage(ts *evals.ToolSelectionSuite, cp *evals.ConfusionPairSuite, args *evals.ArgumentSuite) {
	type counts struct{ selection, confusion, arguments int }
	covered := make(map[string]*counts)
	for _, spec := range tools.AllTools {
		covered[spec.Name] = &counts{}
	}

	var unknown []string
	note := func(name string, bump func(*counts)) {
		c, ok := covered[name]
		if !ok {
			unknown = append(unknown, name)
			return
		}
		bump(c)
	}

	for _, test := range ts.Tests {
		note(test.ExpectedTool, func(c *counts) { c.selection++ })
	}
	for _, pair := range cp.Pairs {
		for _, tool := range pair.Tools {
			note(tool, func(c *counts) { c.confusion++ })
		}
	}
	for _, test := range args.Tests {
		note(test.Tool, func(c *counts) { c.arguments++ })
	}

	fmt.Println("Catalog coverage (selection / confusion / arguments):")
	gaps := 0
	for _, spec := range tools.AllTools {
		c := covered[spec.Name]
		marker := " "
		if c.selection == 0 || c.confusion == 0 || c.arguments == 0 {
			marker = "!"
			gaps++
		}
		fmt.Printf("  %s %-15s %d / %d / %d\n", marker, spec.Name, c.selection, c.confusion, c.arguments)
	}

	if gaps > 0 {
		fmt.Printf("\n%d registered tool(s) missing from at least one suite\n", gaps)
	}
	for _, name := range unknown {
		fmt.Printf("suite references unregistered tool %q\n", name)
	}
}
