package main

import (
	"fmt"
	"os"

	"github.com/ramlo/ramlo"
	"github.com/ramlo/ramlo/cmd/ramlo/commands"
)

var commandNames = []string{"build", "resources", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Println(ramlo.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "build":
		exitOnError(commands.HandleBuild(os.Args[2:]))
	case "resources":
		exitOnError(commands.HandleResources(os.Args[2:]))
	case "mcp":
		exitOnError(commands.HandleMCP(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	if commands.IsNotRAML(err) {
		fmt.Fprintln(os.Stderr, commands.NotRAMLMessage)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Print(`ramlo - RAML 1.0 documentation view model builder

Usage:
  ramlo <command> [flags]

Commands:
  build       Build the documentation view model of a RAML file as JSON or YAML
  resources   Print the resources and endpoints of a RAML file
  mcp         Serve ramlo tools to MCP clients over stdio
  version     Show version information
  help        Show this help message

Configuration:
  Every command accepts --config <file>. Settings can also be set with
  RAMLO_* environment variables, for example RAMLO_OUTPUT_FORMAT=yaml.

Examples:
  ramlo build api.raml
  ramlo build --format yaml -o model.yaml api.raml
  ramlo resources api.raml

Run 'ramlo <command> --help' for more information on a command.
`)
}
