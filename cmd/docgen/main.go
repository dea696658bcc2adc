// Command docgen scans the API handlers for @Title/@Route/@Description
// annotations and regenerates the AsciiDoc API reference served by the
// dashboard docs page.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

type Endpoint struct {
	Title       string
	Route       string
	Description string
	Response    string
}

func main() {
	apiDir := "internal/api"
	files, err := os.ReadDir(apiDir)
	if err != nil {
		panic(err)
	}

	var endpoints []Endpoint

	// Regex to match comments
	reTitle := regexp.MustCompile(`// @Title: (.*)`)
	reRoute := regexp.MustCompile(`// @Route: (.*)`)
	reDesc := regexp.MustCompile(`// @Description: (.*)`)
	reResp := regexp.MustCompile(`// @Response: (.*)`)

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".go") || strings.HasSuffix(file.Name(), "_test.go") {
			continue
		}

		f, err := os.Open(filepath.Join(apiDir, file.Name()))
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(f)
		var current Endpoint

		for scanner.Scan() {
			line := scanner.Text()

			if match := reTitle.FindStringSubmatch(line); len(match) > 1 {
				current.Title = strings.TrimSpace(match[1])
			}
			if match := reRoute.FindStringSubmatch(line); len(match) > 1 {
				current.Route = strings.TrimSpace(match[1])
			}
			if match := reDesc.FindStringSubmatch(line); len(match) > 1 {
				current.Description = strings.TrimSpace(match[1])
			}
			if match := reResp.FindStringSubmatch(line); len(match) > 1 {
				current.Response = strings.TrimSpace(match[1])
				// End of block, append and reset
				if current.Title != "" && current.Route != "" {
					endpoints = append(endpoints, current)
					current = Endpoint{}
				}
			}
		}
		f.Close()
	}

	generateAsciiDoc(endpoints)
}

func generateAsciiDoc(endpoints []Endpoint) {
	var b strings.Builder

	b.WriteString("= API Reference\n")
	b.WriteString(":toc:\n\n")
	b.WriteString("Auto-generated from handler annotations. Run `go run ./cmd/docgen` after changing them.\n\n")

	for _, ep := range endpoints {
		fmt.Fprintf(&b, "== %s\n\n", ep.Title)
		fmt.Fprintf(&b, "`%s`\n\n", ep.Route)
		fmt.Fprintf(&b, "%s\n\n", ep.Description)
		if ep.Response != "" {
			b.WriteString(".Response\n")
			b.WriteString("[source,json]\n----\n")
			fmt.Fprintf(&b, "%s\n", ep.Response)
			b.WriteString("----\n\n")
		}
	}

	out := "internal/docs/api.adoc"
	if err := os.WriteFile(out, []byte(b.String()), 0644); err != nil {
		panic(err)
	}
	fmt.Println("Generated", out)
}
