package agent

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/etnz/equity"
	"github.com/etnz/equity/docs"
	"github.com/etnz/equity/renderer"
	"google.golang.org/genai"
)

// Books is what the assistant knows about the user: the ledger of lots and
// the yearly filings.
type Books struct {
	Ledger     *equity.Ledger
	Filings    equity.Filings
	Calculator *equity.Calculator
}

// Functions returns the tools reading the books.
func (b *Books) Functions() []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Lots",
				Description: "Lots lists every lot of options and stock: ticker, stage, units, strike price, exercise and sale.",
				Response:    markdownResponse,
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.LifecyclesMarkdown(b.Ledger.Lifecycles()), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Events",
				Description: "Events lists every grant, exercise and sale in chronological order.",
				Response:    markdownResponse,
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.EventsMarkdown(b.Ledger.Events()), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Holdings",
				Description: "Holdings returns, for each ticker, the units granted, still options, held as stock and sold.",
				Response:    markdownResponse,
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.HoldingsMarkdown(b.Ledger), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Taxes",
				Description: "Taxes computes the income tax, capital gains tax, AMT and payroll taxes of a year with a filing.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"year": {Type: genai.TypeInteger, Description: "The tax year, like 2021."},
					},
					Required: []string{"year"},
				},
				Response: markdownResponse,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				year, err := intArg(args, "year")
				if err != nil {
					return "", err
				}
				return b.taxes(year)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Topic",
				Description: "Topic returns the eqt documentation about a topic.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"topic": {Type: genai.TypeString, Description: "One of " + fmt.Sprint(must(docs.AllTopics()))},
					},
					Required: []string{"topic"},
				},
				Response: markdownResponse,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				topic, ok := args["topic"].(string)
				if !ok {
					return "", fmt.Errorf("argument 'topic' is not a string as expected but %T", args["topic"])
				}
				return docs.Topic(topic)
			},
		},
	}
}

var markdownResponse = &genai.Schema{Type: genai.TypeString, Description: "A markdown document."}

// taxes renders the tax report of a year.
func (b *Books) taxes(year int) (string, error) {
	f, err := b.Filings.Get(year)
	if err != nil {
		return "", fmt.Errorf("%w, known years are %v", err, b.Filings.Years())
	}
	r, err := b.Calculator.Report(f, b.Ledger.Lifecycles())
	if err != nil {
		return "", err
	}
	return renderer.TaxMarkdown(r), nil
}

// intArg reads an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]any, name string) (int, error) {
	switch v := args[name].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v", name, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer: %w", name, err)
		}
		return i, nil
	case nil:
		return 0, fmt.Errorf("missing argument %q", name)
	default:
		return 0, fmt.Errorf("argument %q must be an integer, got %T", name, v)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
