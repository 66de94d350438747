package terraform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/autoinfra/autoinfra/pkg/api"
)

var (
	resourceHeaderRe = regexp.MustCompile(`resource\s+"[^"]+"\s+"[^"]+"`)
	hardcodedPassRe  = regexp.MustCompile(`(?i)password\s*=\s*"[^"]+"`)
)

// Validator performs a lexical scan over Terraform code. It is not a
// parser: brace counting and keyword checks only.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator { return &Validator{} }

// Validate reports structural errors, advisory warnings, and suggestions.
// Valid is true iff no errors were found.
func (v *Validator) Validate(code string) api.ValidationResult {
	errors := []string{}
	warnings := []string{}
	suggestions := []string{}

	if !strings.Contains(code, "terraform {") {
		errors = append(errors, "Missing terraform block")
	}
	if !strings.Contains(code, "provider") {
		errors = append(errors, "Missing provider configuration")
	}

	// Keyword followed by a space or a quote, so substrings inside other
	// identifiers do not count.
	for _, block := range []string{"resource", "variable"} {
		if !strings.Contains(code, block+" ") && !strings.Contains(code, block+`"`) {
			warnings = append(warnings, fmt.Sprintf("No %s blocks found", block))
		}
	}

	resourceCount := len(resourceHeaderRe.FindAllString(code, -1))
	if resourceCount == 0 {
		errors = append(errors, "No resources defined")
	}

	openBraces := strings.Count(code, "{")
	closeBraces := strings.Count(code, "}")
	if openBraces != closeBraces {
		errors = append(errors, fmt.Sprintf("Unmatched braces: %d opening, %d closing", openBraces, closeBraces))
	}

	lower := strings.ToLower(code)
	if !strings.Contains(lower, "security_group") {
		warnings = append(warnings, "No security groups found - consider adding network security")
	}
	if !strings.Contains(lower, "vpc") {
		warnings = append(warnings, "No VPC found - consider using VPC for network isolation")
	}

	if strings.Contains(code, "t2.micro") {
		suggestions = append(suggestions, "Using t2.micro instance type (free tier eligible)")
	}
	if strings.Contains(code, "enable_deletion_protection = false") {
		suggestions = append(suggestions, "Consider enabling deletion protection for production")
	}

	if hardcodedPassRe.MatchString(code) {
		errors = append(errors, "Hardcoded passwords detected - use variables or secrets manager")
	}

	return api.ValidationResult{
		Valid:         len(errors) == 0,
		Errors:        errors,
		Warnings:      warnings,
		ResourceCount: resourceCount,
		Suggestions:   suggestions,
	}
}
