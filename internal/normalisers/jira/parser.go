package jira

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-its/internal/logger"
)

// itemTag is the element name of one issue in an export.
const itemTag = "item"

// Ensure Parser implements the interface.
var _ driven.ExportParser = (*Parser)(nil)

// Parser converts tracker XML exports into normalised issues.
type Parser struct {
	workers int
}

// Option configures the parser.
type Option func(*Parser)

// WithWorkers sets how many items are mapped concurrently.
// Output order never depends on the worker count.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewParser creates a parser. By default items are mapped one at a time.
func NewParser(opts ...Option) *Parser {
	p := &Parser{workers: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile loads the export at path and maps every item in it.
func (p *Parser) ParseFile(ctx context.Context, path string, opts domain.MappingOptions) ([]domain.Issue, error) {
	if path == "" {
		return nil, fmt.Errorf("path has to be set: %w", domain.ErrInvalidArgument)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDocument, path, err)
	}
	if err := checkWellFormed(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("Loaded export %s", path)
	return p.Parse(ctx, doc, opts)
}

// ParseReader reads an export from r and maps every item in it.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, opts domain.MappingOptions) ([]domain.Issue, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDocument, err)
	}
	if err := checkWellFormed(doc); err != nil {
		return nil, err
	}
	return p.Parse(ctx, doc, opts)
}

// checkWellFormed rejects what the tokenizer lets through: a document
// needs exactly one root element and no text outside of it.
func checkWellFormed(doc *etree.Document) error {
	if n := len(doc.ChildElements()); n != 1 {
		return fmt.Errorf("%w: expected one root element, found %d", domain.ErrDocument, n)
	}
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return fmt.Errorf("%w: text outside the root element", domain.ErrDocument)
		}
	}
	return nil
}

// Parse maps every item element of doc, at any depth, in document order.
// A single malformed item fails the whole call; no partial results are returned.
func (p *Parser) Parse(ctx context.Context, doc *etree.Document, opts domain.MappingOptions) ([]domain.Issue, error) {
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrDocument)
	}

	defer logger.Timed("map issue items")()

	items := descendants(&doc.Element, itemTag)
	logger.Debug("Found %d issue items", len(items))

	issues := make([]domain.Issue, len(items))
	errs := make([]error, len(items))

	// Sibling failures do not cancel pending items, so the reported
	// error is always the earliest broken item.
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			issue, err := mapIssue(item, opts)
			if err != nil {
				key, _ := extractSingle(item, "key")
				errs[i] = &domain.ItemError{Position: i + 1, Key: key, Err: err}
				return errs[i]
			}
			issues[i] = issue
			logger.Debug("Mapped item %d: %s", i+1, issue.IssueID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Report the earliest failing item so results do not depend on scheduling.
		if first := firstError(errs); first != nil {
			return nil, first
		}
		return nil, err
	}
	return issues, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
