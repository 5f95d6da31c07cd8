// Package extract scans Go sources for potext lookup call sites with
// literal arguments and collects them into a template catalog.
package extract

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/tools/go/packages"
)

const (
	targetPackage = "github.com/romshark/potext"
	targetType    = "*" + targetPackage + ".Catalog"

	FuncGetString                 = "GetString"
	FuncGetParticularString       = "GetParticularString"
	FuncGetPluralString           = "GetPluralString"
	FuncGetParticularPluralString = "GetParticularPluralString"
)

type Statistics struct {
	StringTotal           atomic.Int64
	ParticularTotal       atomic.Int64
	PluralTotal           atomic.Int64
	ParticularPluralTotal atomic.Int64
	Merges                atomic.Int64
	FilesTraversed        atomic.Int64
}

// Msg is one extracted message.
type Msg struct {
	Context  string
	ID       string
	IDPlural string
	Plural   bool
}

type MsgMeta struct {
	Pos []token.Position
}

// Catalog is a collection of extracted messages
// that can be marshaled into a `.pot` template.
type Catalog struct {
	Messages map[Msg]MsgMeta
}

// Ordered returns an iterator over all messages ordered by context and id.
func (c *Catalog) Ordered() iter.Seq2[Msg, MsgMeta] {
	ordered := make([]Msg, 0, len(c.Messages))
	for m := range c.Messages {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Context != ordered[j].Context {
			return ordered[i].Context < ordered[j].Context
		}
		return ordered[i].ID < ordered[j].ID
	})
	return func(yield func(Msg, MsgMeta) bool) {
		for _, m := range ordered {
			if !yield(m, c.Messages[m]) {
				break
			}
		}
	}
}

var (
	ErrSourceTextEmpty = errors.New("message id empty")
	ErrSourceArgType   = errors.New(
		"non-literal argument (only string literals and constants are supported)",
	)
)

type ErrorSrc struct {
	token.Position
	Err error
}

// Parse loads the packages matching pathPattern and collects every
// call to the potext lookup operations with literal string arguments.
func Parse(pathPattern string, trimpath, quiet, verbose bool) (
	catalog *Catalog, stats *Statistics,
	srcErrs []ErrorSrc, err error,
) {
	fileset := token.NewFileSet()
	stats = new(Statistics)

	cfg := &packages.Config{
		Mode: packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedDeps,
		Fset: fileset,
	}
	pkgs, err := packages.Load(cfg, pathPattern)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading packages: %w", err)
	}

	catalog = &Catalog{Messages: make(map[Msg]MsgMeta)}

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			stats.FilesTraversed.Add(1)
			for _, decl := range file.Decls {
				ast.Inspect(decl, func(node ast.Node) bool {
					call, ok := node.(*ast.CallExpr)
					if !ok {
						return true
					}
					selector, ok := call.Fun.(*ast.SelectorExpr)
					if !ok { // Not a method call.
						return true
					}

					obj := pkg.TypesInfo.Uses[selector.Sel]
					if obj == nil {
						return true
					}
					methodType, ok := obj.Type().(*types.Signature)
					if !ok {
						return true
					}
					recv := methodType.Recv()
					if recv == nil || recv.Type().String() != targetType {
						return true // Not the right receiver type.
					}
					if obj.Pkg() == nil || obj.Pkg().Path() != targetPackage {
						return true // Not from the target package.
					}

					funcName := selector.Sel.Name
					var idArgs int // Leading string arguments to extract.
					msg := Msg{}
					switch funcName {
					case FuncGetString:
						stats.StringTotal.Add(1)
						idArgs = 1
					case FuncGetParticularString:
						stats.ParticularTotal.Add(1)
						idArgs = 2
					case FuncGetPluralString:
						stats.PluralTotal.Add(1)
						idArgs = 2
						msg.Plural = true
					case FuncGetParticularPluralString:
						stats.ParticularPluralTotal.Add(1)
						idArgs = 3
						msg.Plural = true
					default:
						return true // Not one of the lookup operations.
					}
					if len(call.Args) < idArgs {
						return true
					}

					pos := fileset.Position(call.Pos())
					if trimpath {
						pos.Filename = mustTrimPath(pathPattern, pos.Filename)
					}

					args := make([]string, idArgs)
					for i := range idArgs {
						v, ok := stringArg(pkg.TypesInfo, call.Args[i])
						if !ok {
							appendSrcErr(&srcErrs, pos, fmt.Errorf(
								"%w: %T", ErrSourceArgType, call.Args[i],
							))
							return true
						}
						args[i] = v
					}

					switch funcName {
					case FuncGetString:
						msg.ID = args[0]
					case FuncGetParticularString:
						msg.Context, msg.ID = args[0], args[1]
					case FuncGetPluralString:
						msg.ID, msg.IDPlural = args[0], args[1]
					case FuncGetParticularPluralString:
						msg.Context, msg.ID, msg.IDPlural = args[0], args[1], args[2]
					}

					if msg.ID == "" {
						appendSrcErr(&srcErrs, pos, ErrSourceTextEmpty)
						return true
					}

					if verbose && !quiet {
						fmt.Fprintf(os.Stderr, "%s:%d:%d\n",
							pos.Filename, pos.Line, pos.Column)
					}

					if m, ok := catalog.Messages[msg]; ok {
						// Identical message already found elsewhere; merge.
						m.Pos = append(m.Pos, pos)
						catalog.Messages[msg] = m
						stats.Merges.Add(1)
					} else {
						m.Pos = []token.Position{pos}
						catalog.Messages[msg] = m
					}
					return true
				})
			}
		}
	}

	return catalog, stats, srcErrs, nil
}

// stringArg resolves a call argument to its constant string value.
// Covers string literals and string constants alike.
func stringArg(info *types.Info, expr ast.Expr) (string, bool) {
	tv := info.Types[expr]
	if tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(tv.Value), true
}

func appendSrcErr(s *[]ErrorSrc, pos token.Position, err error) {
	*s = append(*s, ErrorSrc{Position: pos, Err: err})
}

func mustTrimPath(basePattern, s string) string {
	basePattern = strings.TrimSuffix(basePattern, "/...")
	abs, err := filepath.Abs(basePattern)
	if err != nil {
		panic(fmt.Errorf("getting absolute path: %w", err))
	}
	return strings.TrimPrefix(s, abs)
}
