package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/substrate-tools/weightlens/internal/config"
	"github.com/substrate-tools/weightlens/internal/gitdiff"
	"github.com/substrate-tools/weightlens/internal/github"
	"github.com/substrate-tools/weightlens/internal/output"
	"github.com/substrate-tools/weightlens/internal/weights"
)

var (
	flagFile              string
	flagThreshold         float64
	flagFormat            string
	flagOut               string
	flagFailOnSignificant bool
	flagMergeBase         bool
	flagRepo              string
)

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&flagThreshold, "threshold", "t", 0, "significance threshold in percent (default 50)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "output format: text, markdown, json")
	cmd.Flags().StringVar(&flagOut, "out", "", "write report to file instead of stdout")
	cmd.Flags().BoolVar(&flagFailOnSignificant, "fail-on-significant", false, "exit 1 when significant changes are found")
}

// buildOverrides maps set flags onto config override keys.
func buildOverrides(cmd *cobra.Command) map[string]string {
	overrides := make(map[string]string)
	if cmd.Flags().Changed("threshold") {
		overrides["threshold"] = strconv.FormatFloat(flagThreshold, 'f', -1, 64)
	}
	if cmd.Flags().Changed("format") {
		overrides["format"] = flagFormat
	}
	if cmd.Flags().Changed("fail-on-significant") {
		overrides["failOnSignificant"] = strconv.FormatBool(flagFailOnSignificant)
	}
	return overrides
}

// runAnalysis runs the pipeline over an acquired diff and writes the
// report. Failures print to stderr and set exitCode; Execute errors
// are reserved for genuine usage mistakes.
func runAnalysis(diff gitdiff.Result, cfg config.Config) {
	analysis, err := weights.Analyze(diff.Diff, cfg.Threshold)
	if err != nil {
		if errors.Is(err, weights.ErrEmptyDiff) {
			fmt.Fprintln(os.Stderr, "No diff input provided. Pipe a git diff or use --file.")
		} else {
			fmt.Fprintf(os.Stderr, "Error analyzing diff: %v\n", err)
		}
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteReport(analysis, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailOnSignificant && analysis.Significant() {
		exitCode = ExitSignificant
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a weight diff from stdin or a file",
	Long:  "Analyze reads a unified diff of weight files from stdin (or --file) and reports base weight, multiplier, proof size, and execution time changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		var diff gitdiff.Result
		if flagFile != "" {
			diff, err = gitdiff.File(flagFile)
		} else {
			diff, err = gitdiff.Stdin(cmd.InOrStdin())
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading diff: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		runAnalysis(diff, cfg)
		return nil
	},
}

var gitCmd = &cobra.Command{
	Use:   "git <rev-range>",
	Short: "Analyze weight changes between git revisions",
	Long:  "Git runs `git diff` over the weights pathspec for the given revision range (e.g. main..HEAD) and analyzes the result.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		diff, err := gitdiff.Range(args[0], flagMergeBase)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting git diff: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		runAnalysis(diff, cfg)
		return nil
	},
}

var prCmd = &cobra.Command{
	Use:   "pr <number>",
	Short: "Analyze weight changes in a GitHub pull request",
	Long:  "PR fetches the unified diff of a pull request from the GitHub API and analyzes it. Requires GITHUB_TOKEN.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		num, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil {
			return fmt.Errorf("invalid PR number %q", args[0])
		}

		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		owner, repo, err := resolveRepo()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		client, err := github.NewClient(cfg.GitHub.APIURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if github.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		diffText, err := client.PRDiff(context.Background(), owner, repo, num)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching PR diff: %v\n", err)
			if github.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		diff := gitdiff.Result{
			Diff:   diffText,
			Source: "github",
			Range:  fmt.Sprintf("%s/%s#%d", owner, repo, num),
		}
		runAnalysis(diff, cfg)
		return nil
	},
}

// resolveRepo picks the target repository from --repo or the origin remote.
func resolveRepo() (string, string, error) {
	if flagRepo != "" {
		return splitRepoRef(flagRepo)
	}
	return github.DetectRepo()
}

func splitRepoRef(ref string) (string, string, error) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo %q, expected owner/repo", ref)
	}
	return parts[0], parts[1], nil
}

func init() {
	addAnalyzeFlags(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&flagFile, "file", "f", "", "read diff from file instead of stdin")

	addAnalyzeFlags(gitCmd)
	gitCmd.Flags().BoolVar(&flagMergeBase, "merge-base", false, "diff against the merge base (three-dot range)")

	addAnalyzeFlags(prCmd)
	prCmd.Flags().StringVar(&flagRepo, "repo", "", "target repository as owner/repo (default: origin remote)")
}
