package core

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

// checkWithDuration type-checks src together with duration.go.
func checkWithDuration(t *testing.T, src string) error {
	t.Helper()

	fset := token.NewFileSet()
	decl, err := parser.ParseFile(fset, "duration.go", nil, 0)
	if err != nil {
		t.Fatalf("Failed to parse duration.go: %v", err)
	}
	use, err := parser.ParseFile(fset, "use.go", "package core\n"+src, 0)
	if err != nil {
		t.Fatalf("Failed to parse snippet: %v", err)
	}

	conf := types.Config{Importer: importer.Default()}
	_, err = conf.Check("core", fset, []*ast.File{decl, use}, nil)
	return err
}

const useDuration = `
func use[D Duration](d D) D { return d }
`

func TestDurationAcceptsStandardWidths(t *testing.T) {
	src := useDuration + `
type wrappedTicks uint32

var (
	_ = use(uint32(1))
	_ = use(uint64(1))
	_ = use(wrappedTicks(1))
)
`
	if err := checkWithDuration(t, src); err != nil {
		t.Errorf("Expected uint32/uint64 to satisfy Duration: %v", err)
	}
}

func TestDurationRejectsOtherTypes(t *testing.T) {
	testCases := []string{"uint16", "uint8", "int64", "float64", "uint"}

	for _, typ := range testCases {
		t.Run(typ, func(t *testing.T) {
			src := useDuration + "var _ = use(" + typ + "(1))\n"
			err := checkWithDuration(t, src)
			if err == nil {
				t.Fatalf("Expected %s to be rejected as a Duration", typ)
			}
			if !strings.Contains(err.Error(), "does not satisfy") {
				t.Errorf("Unexpected type error for %s: %v", typ, err)
			}
		})
	}
}

func TestTicksSinceAcrossRollover(t *testing.T) {
	if got := TicksSince[uint32](0xFFFFFFF0, 0x10); got != 0x20 {
		t.Errorf("Expected 0x20 ticks across uint32 rollover, got %#x", got)
	}
	if got := TicksSince[uint64](1000, 1500); got != 500 {
		t.Errorf("Expected 500 ticks, got %d", got)
	}

	type ticks uint32
	if got := TicksSince(ticks(5), ticks(3)); got != ticks(0xFFFFFFFE) {
		t.Errorf("Expected wrapped difference, got %#x", got)
	}
}
