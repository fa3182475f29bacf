package checker

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/srcspell/srcspell/internal/utils"
	"github.com/srcspell/srcspell/pkg/dictionary"
	"github.com/srcspell/srcspell/pkg/settings"
	"github.com/srcspell/srcspell/pkg/splitter"
	"github.com/srcspell/srcspell/pkg/tokenizer"
)

// Pipeline checks files against a shared read-only dictionary. Construct
// once per run; the dictionary is never mutated after build, so workers
// query it without locking. The file cache is the only shared mutable
// state.
type Pipeline struct {
	dict        *dictionary.Dictionary
	cache       *FileCache
	split       *splitter.Splitter
	ignore      map[string]struct{}
	fingerprint string

	workers         int
	maxSuggestions  int
	maxEditDistance int
}

// New assembles a pipeline. workers <= 0 defaults to the number of
// available processing units.
func New(dict *dictionary.Dictionary, cache *FileCache, cfg *settings.Settings, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if cache == nil {
		cache = NewFileCache()
	}
	return &Pipeline{
		dict:            dict,
		cache:           cache,
		split:           splitter.New(splitter.DefaultMinLength),
		ignore:          cfg.IgnoreSet(),
		fingerprint:     cfg.Fingerprint(),
		workers:         workers,
		maxSuggestions:  cfg.MaxSuggestions,
		maxEditDistance: cfg.MaxEditDistance,
	}
}

// Check processes files in parallel and returns diagnostics sorted by file
// path, then line, then column, so output does not depend on worker count.
// Per-file failures are collected in the result, not returned as an error;
// only cancellation aborts the run.
func (p *Pipeline) Check(ctx context.Context, files []File) (*Result, error) {
	perFile := make([][]Diagnostic, len(files))
	perErr := make([]*FileError, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			diags, err := p.checkFile(ctx, files[i])
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				perErr[i] = &FileError{Path: files[i].Path, Err: err}
				log.Warnf("Skipping %s: %v", files[i].Path, err)
				return nil
			}
			perFile[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return files[order[a]].Path < files[order[b]].Path
	})
	for _, i := range order {
		res.Diagnostics = append(res.Diagnostics, perFile[i]...)
		if perErr[i] != nil {
			res.Errors = append(res.Errors, perErr[i])
		}
	}
	return res, nil
}

// Cache exposes the pipeline's file cache for persistence between runs.
func (p *Pipeline) Cache() *FileCache {
	return p.cache
}

// checkFile runs one file end to end: hash, cache lookup, tokenize, split,
// dictionary queries, cache store.
func (p *Pipeline) checkFile(ctx context.Context, f File) ([]Diagnostic, error) {
	content := f.Content
	if content == nil {
		var err error
		content, err = os.ReadFile(f.Path)
		if err != nil {
			return nil, err
		}
	}

	hash := utils.HashBytes(content)
	if diags, ok := p.cache.Lookup(hash, p.fingerprint); ok {
		log.Debugf("Cache hit: %s", f.Path)
		return diags, nil
	}

	tokens, err := p.tokenize(ctx, f.Path, content)
	if err != nil {
		return nil, err
	}

	diags := make([]Diagnostic, 0)
	for _, tok := range tokens {
		var frags []splitter.Fragment
		switch tok.Kind {
		case tokenizer.Identifier:
			frags = p.split.SplitIdentifier(tok.Text)
		case tokenizer.Comment, tokenizer.StringLiteral:
			frags = p.split.SplitText(tok.Text)
		default:
			continue
		}
		for _, frag := range frags {
			if _, skip := p.ignore[frag.Text]; skip {
				continue
			}
			if p.dict.Contains(frag.Text) {
				continue
			}
			line, col := advance(tok, frag.Offset)
			diags = append(diags, Diagnostic{
				FilePath:    f.Path,
				Word:        frag.Text,
				Line:        line,
				Column:      col,
				Offset:      tok.StartByte + uint32(frag.Offset),
				Suggestions: p.dict.Suggest(frag.Text, p.maxEditDistance, p.maxSuggestions),
				Severity:    SeverityWarning,
			})
		}
	}

	p.cache.Store(hash, p.fingerprint, diags)
	return diags, nil
}

// tokenize parses content with the detected grammar, falling back to
// plain-text mode for unsupported languages and catastrophic parse
// failures.
func (p *Pipeline) tokenize(ctx context.Context, path string, content []byte) ([]tokenizer.Token, error) {
	langID := tokenizer.DetectLanguage(path)
	if langID == "" {
		log.Debugf("No grammar for %s, using plain-text mode", path)
		return tokenizer.TokenizePlainText(content), nil
	}
	tokens, err := tokenizer.Tokenize(ctx, content, langID)
	if err != nil {
		if errors.Is(err, tokenizer.ErrUnsupportedLanguage) || errors.Is(err, tokenizer.ErrUnparseable) {
			log.Debugf("Falling back to plain-text mode for %s: %v", path, err)
			return tokenizer.TokenizePlainText(content), nil
		}
		return nil, err
	}
	return tokens, nil
}

// advance locates a fragment offset within a token, accounting for
// newlines inside multi-line comment and string tokens.
func advance(tok tokenizer.Token, offset int) (line, col int) {
	prefix := tok.Text[:offset]
	newlines := strings.Count(prefix, "\n")
	if newlines == 0 {
		return tok.Line, tok.Column + offset
	}
	lastNL := strings.LastIndexByte(prefix, '\n')
	return tok.Line + newlines, offset - lastNL
}
