// Example program demonstrating the fontswap library API.
//
// Run from the repo root with the game install root and a font file:
//
//	go run ./example/ "/path/to/Counter-Strike Global Offensive" ~/Fonts/Inter-Regular.ttf
//
// Without arguments it only checks for a newer fontswap release.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/MyCarrier-DevOps/go-fontswap/pkg/sdk"
)

func main() {
	ctx := context.Background()

	if len(os.Args) == 3 {
		applyFont(ctx, os.Args[1], os.Args[2])
	}

	checkUpdate(ctx)
}

func applyFont(ctx context.Context, gamePath, fontPath string) {
	opts := sdk.Options{GamePath: gamePath}

	result, err := sdk.Apply(ctx, opts, sdk.ApplyOptions{FontPath: fontPath})
	if err != nil {
		log.Fatalf("apply failed: %v", err)
	}
	printVariables("Apply", result)

	result, err = sdk.Analyze(ctx, opts)
	if err != nil {
		log.Fatalf("analyze failed: %v", err)
	}
	fmt.Print(result.Analysis.FormattedOutput)
	fmt.Println()
}

func checkUpdate(ctx context.Context) {
	result, err := sdk.CheckUpdate(ctx, sdk.UpdateOptions{
		Current: "0.1.0",
		Token:   os.Getenv("GITHUB_TOKEN"),
	})
	if err != nil {
		log.Fatalf("update check failed: %v", err)
	}

	printVariables("Update", result)
}

func printVariables(label string, result *sdk.Result) {
	fmt.Printf("=== %s ===\n", label)

	keys := make([]string, 0, len(result.Variables))
	for k := range result.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-20s %s\n", k, result.Variables[k])
	}
	fmt.Println()
}
