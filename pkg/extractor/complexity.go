package extractor

import "regexp"

// branchRe matches the branching constructs counted toward the
// complexity score. One point per branch on top of a baseline of 1,
// so every file scores at least the baseline.
var branchRe = regexp.MustCompile(`\b(if|else|for|while|case|switch|catch|except|elif)\b|&&|\|\||\?\s*[^:]+:`)

func estimateComplexity(src string) int {
	return 1 + len(branchRe.FindAllString(src, -1))
}
