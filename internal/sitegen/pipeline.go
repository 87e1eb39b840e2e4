package sitegen

import (
	"context"
	"errors"
	"fmt"
	"log"

	"sitegen_server/internal/ai/prompts"
	"sitegen_server/internal/markup"
	"sitegen_server/internal/types"
)

var (
	newSiteOptions = types.GenerationOptions{Temperature: 0.9, MaxTokens: 16384, TopP: 0.95}
	modifyOptions  = types.GenerationOptions{Temperature: 0.7, MaxTokens: 16384, TopP: 0.95}
)

// GenerationResult is the decomposed output of one generation pass.
type GenerationResult struct {
	Index       *markup.Document
	Code        string // serialized Index
	Description string // markdown the model wrote after the code
	Pages       map[string]*markup.Document
	Worklist    []types.PageDescriptor
	Assets      Extraction
}

// Pipeline turns raw model output into a multi-file site.
type Pipeline struct {
	gen         TextGenerator
	synth       *PageSynthesizer
	concurrency int
}

type PipelineOption func(*Pipeline)

// WithPageConcurrency lets up to n page syntheses run at once.
func WithPageConcurrency(n int) PipelineOption {
	return func(p *Pipeline) {
		p.concurrency = n
	}
}

func NewPipeline(gen TextGenerator, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		gen:         gen,
		synth:       NewPageSynthesizer(gen),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run asks the model for the index page (fresh or modified) and decomposes it.
func (p *Pipeline) Run(ctx context.Context, req types.GenerationRequest) (*GenerationResult, error) {
	prompt := prompts.GetSiteGenerationPrompt(req.Prompt)
	opts := newSiteOptions
	if req.IsModification && req.PreviousCode != "" {
		prompt = prompts.GetSiteCodeChangePrompt(req.Prompt, req.PreviousCode)
		opts = modifyOptions
	}

	raw, err := p.gen.Generate(ctx, prompt, opts)
	if err != nil {
		return nil, fmt.Errorf("generating index page: %w", err)
	}
	return p.Decompose(ctx, req.Prompt, raw)
}

// Decompose applies every deterministic stage to raw model text:
// split, strip fences, rewrite placeholders, inject resources, parse,
// discover pages, extract CSS and JS, then synthesize each discovered page.
func (p *Pipeline) Decompose(ctx context.Context, userPrompt, raw string) (*GenerationResult, error) {
	code, description := markup.SplitResponse(raw)
	code = markup.TrimOuterFence(code)
	if code == "" {
		return nil, errors.New("model returned no markup")
	}

	if category, ok := CategoryForPrompt(userPrompt); ok {
		code = ReplacePlaceholderImages(code, category)
	}
	code = InjectCommonResources(code)

	index := markup.Parse(code)
	worklist := DiscoverPages(index)
	assets := ExtractAssets(index)

	log.Printf("Decomposed index: %d pages to synthesize, css=%d bytes, js=%d bytes", len(worklist), len(assets.CSS), len(assets.JS))

	docs := p.synth.SynthesizeAll(ctx, worklist, index, userPrompt, p.concurrency)
	pages := make(map[string]*markup.Document, len(worklist))
	for i, page := range worklist {
		pages[page.Filename] = docs[i]
	}

	return &GenerationResult{
		Index:       index,
		Code:        index.Serialize(),
		Description: description,
		Pages:       pages,
		Worklist:    worklist,
		Assets:      assets,
	}, nil
}
