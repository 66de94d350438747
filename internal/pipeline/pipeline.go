// Package pipeline wires the intent extractor and the five artifact
// transformers together and hands their outputs to the normalizer.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/autoinfra/autoinfra/internal/billing"
	"github.com/autoinfra/autoinfra/internal/costing"
	"github.com/autoinfra/autoinfra/internal/diagram"
	"github.com/autoinfra/autoinfra/internal/explain"
	"github.com/autoinfra/autoinfra/internal/intent"
	"github.com/autoinfra/autoinfra/internal/pricing"
	"github.com/autoinfra/autoinfra/internal/response"
	"github.com/autoinfra/autoinfra/internal/security"
	"github.com/autoinfra/autoinfra/internal/terraform"
	"github.com/autoinfra/autoinfra/pkg/api"
)

// Pipeline runs the full intent-to-artifacts derivation. All transformers
// are pure functions of the intent (and each other's outputs as wired
// below); nothing here blocks except the extractor's bounded LLM call.
type Pipeline struct {
	extractor *intent.Extractor
	generator *terraform.Generator
	validator *terraform.Validator
	renderer  *diagram.Renderer
	estimator *costing.Estimator
	biller    *billing.Engine
	analyzer  *security.Analyzer
	norm      *response.Normalizer
	logger    *slog.Logger
}

// Options configures a Pipeline.
type Options struct {
	TemplateDir string
	Pricing     pricing.Table
	Extractor   *intent.Extractor
	Logger      *slog.Logger
}

// New creates a Pipeline. A zero Pricing table is replaced with the
// built-in defaults; a nil Extractor gets a heuristic-only one.
func New(opts Options) *Pipeline {
	if opts.Pricing.EC2 == nil {
		opts.Pricing = pricing.Default()
	}
	if opts.Extractor == nil {
		opts.Extractor = intent.NewExtractor(intent.ExtractorOptions{})
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Pipeline{
		extractor: opts.Extractor,
		generator: terraform.NewGenerator(opts.TemplateDir),
		validator: terraform.NewValidator(),
		renderer:  diagram.NewRenderer(),
		estimator: costing.NewEstimator(opts.Pricing),
		biller:    billing.NewEngine(opts.Pricing),
		analyzer:  security.NewAnalyzer(),
		norm:      response.NewNormalizer(),
		logger:    opts.Logger,
	}
}

// Generate extracts an intent from the description and derives all
// artifacts from it.
func (p *Pipeline) Generate(ctx context.Context, description string) api.InfrastructureResponse {
	return p.FromIntent(p.extractor.Extract(ctx, description))
}

// FromIntent derives all artifacts from an already-normalized intent.
// No transformer failure escapes: the generator degrades to its fallback
// body and a detailed-bill failure is substituted by the normalizer.
func (p *Pipeline) FromIntent(in api.Intent) api.InfrastructureResponse {
	code := p.generator.Generate(in)
	dia := p.renderer.Render(in)
	explanation := explain.Describe(in)
	validation := p.validator.Validate(code)
	cost := p.estimator.Estimate(in, validation.ResourceCount)

	bill, billErr := p.biller.Estimate(in, validation.ResourceCount)
	if billErr != nil {
		p.logger.Warn("detailed bill failed, substituting flat estimate", "error", billErr)
	}

	sec := p.analyzer.Analyze(in, code)

	return p.norm.Normalize(response.Inputs{
		Intent:      in,
		Code:        code,
		Diagram:     dia,
		Explanation: explanation,
		Validation:  validation,
		Cost:        cost,
		Bill:        bill,
		BillErr:     billErr,
		Security:    sec,
	})
}
