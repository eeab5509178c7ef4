package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vireodb/vireo/pkg/columnar"
	"github.com/vireodb/vireo/pkg/engine"
	"github.com/vireodb/vireo/pkg/engine/executor"
	"github.com/vireodb/vireo/pkg/engine/lambda"
)

// runCommand benchmarks operations over a synthetic block of array
// data.
type runCommand struct {
	ops        *[]string
	rows       *int
	elements   *int
	valueType  *string
	iterations *int
	verbose    *bool
}

func (cmd *runCommand) run(c *kingpin.ParseContext) error {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if *cmd.verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	eng, err := engine.New(engine.Params{Logger: logger})
	if err != nil {
		exitWithErr(err)
	}

	mem := memory.DefaultAllocator
	elem := elementType(*cmd.valueType)

	block, err := generateBlock(mem, *cmd.rows, *cmd.elements, elem)
	if err != nil {
		exitWithErr(err)
	}
	defer columnar.Release(block)

	ops := *cmd.ops
	if len(ops) == 0 {
		ops = executor.Names()
	}

	bold := color.New(color.Bold)
	bold.Println("Block:")
	fmt.Printf("\trows: %s, elements: %s, type: %s\n",
		humanize.Comma(int64(*cmd.rows)),
		humanize.Comma(block.TotalElements()),
		elem,
	)

	for _, op := range ops {
		cmd.runOne(eng, mem, block, op, elem, bold)
	}
	return nil
}

func (cmd *runCommand) runOne(eng *engine.Engine, mem memory.Allocator, block *columnar.List, op string, elem columnar.DataType, bold *color.Color) {
	args, err := argumentsFor(mem, op, block, elem)
	if err != nil {
		bold.Printf("%s:\n", op)
		fmt.Printf("\tskipped: %v\n", err)
		return
	}

	iters := *cmd.iterations
	start := time.Now()
	for i := 0; i < iters; i++ {
		out, err := eng.Evaluate(op, args)
		if err != nil {
			exitWithErr(fmt.Errorf("%s: %w", op, err))
		}
		columnar.Release(out)
	}
	total := time.Since(start)

	perRun := total / time.Duration(iters)
	rate := float64(block.TotalElements()) * float64(iters) / total.Seconds()
	bold.Printf("%s:\n", op)
	fmt.Printf("\ttotal: %v, per run: %v, throughput: %s elements/s\n",
		total, perRun, humanize.CommafWithDigits(rate, 0))
}

// argumentsFor builds the call arguments for op over block: a canned
// expression matching the operation's needs, the block itself, and a
// zero seed for folding operations.
func argumentsFor(mem memory.Allocator, op string, block *columnar.List, elem columnar.DataType) ([]executor.Argument, error) {
	fn, err := executor.Lookup(op)
	if err != nil {
		return nil, err
	}
	s := fn.Strategy()

	switch {
	case s.IsFolding():
		if !columnar.IsNumeric(elem) {
			return nil, fmt.Errorf("no canned expression folds %s elements", elem)
		}
		l := lambda.New([]lambda.Param{
			{Name: "x", Type: elem},
			{Name: "acc", Type: elem},
		}, &lambda.BinaryExpr{
			Left:  lambda.NewParam("acc"),
			Right: lambda.NewParam("x"),
			Op:    lambda.BinOpKindAdd,
		})
		cl, err := lambda.NewClosure(mem, l, block.Len())
		if err != nil {
			return nil, err
		}
		return []executor.Argument{
			{Closure: cl},
			{Vector: block},
			{Vector: zeroSeed(elem, block.Len())},
		}, nil

	case s.NeedsBooleanResult():
		l := lambda.New([]lambda.Param{{Name: "x", Type: elem}}, predicateBody(elem))
		cl, err := lambda.NewClosure(mem, l, block.Len())
		if err != nil {
			return nil, err
		}
		return []executor.Argument{{Closure: cl}, {Vector: block}}, nil

	case s.NeedsExpression():
		l := lambda.New([]lambda.Param{{Name: "x", Type: elem}}, transformBody(elem))
		cl, err := lambda.NewClosure(mem, l, block.Len())
		if err != nil {
			return nil, err
		}
		return []executor.Argument{{Closure: cl}, {Vector: block}}, nil

	default:
		// Aggregations without an expression take the one-array form.
		if !columnar.IsNumeric(elem) {
			return nil, fmt.Errorf("no canned aggregation over %s elements", elem)
		}
		return []executor.Argument{{Vector: block}}, nil
	}
}

// predicateBody picks a boolean expression over one element.
func predicateBody(elem columnar.DataType) lambda.Expression {
	x := lambda.NewParam("x")
	switch elem {
	case columnar.Integer:
		return &lambda.BinaryExpr{Left: x, Right: lambda.NewLiteral(int64(500)), Op: lambda.BinOpKindGt}
	case columnar.Float:
		return &lambda.BinaryExpr{Left: x, Right: lambda.NewLiteral(250.0), Op: lambda.BinOpKindGt}
	default:
		return &lambda.BinaryExpr{Left: x, Right: lambda.NewLiteral("o"), Op: lambda.BinOpKindMatchSubstr}
	}
}

// transformBody picks a value expression over one element.
func transformBody(elem columnar.DataType) lambda.Expression {
	x := lambda.NewParam("x")
	switch elem {
	case columnar.Integer:
		return &lambda.BinaryExpr{Left: x, Right: lambda.NewLiteral(int64(2)), Op: lambda.BinOpKindMul}
	case columnar.Float:
		return &lambda.BinaryExpr{Left: x, Right: lambda.NewLiteral(2.0), Op: lambda.BinOpKindMul}
	default:
		return x
	}
}

func zeroSeed(elem columnar.DataType, rows int64) columnar.ColumnVector {
	if elem == columnar.Float {
		return columnar.NewScalar(columnar.NewLiteral(0.0), rows)
	}
	return columnar.NewScalar(columnar.NewLiteral(int64(0)), rows)
}

// generateBlock builds rows lists of perRow elem-typed values each.
// Integer values cycle over [0, 1000), floats over [0, 500), strings
// over a fixed word list.
func generateBlock(mem memory.Allocator, rows, perRow int, elem columnar.DataType) (*columnar.List, error) {
	b := array.NewListBuilder(mem, elem.ArrowType())
	defer b.Release()

	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}

	var k int64
	switch vb := b.ValueBuilder().(type) {
	case *array.Int64Builder:
		for r := 0; r < rows; r++ {
			b.Append(true)
			for e := 0; e < perRow; e++ {
				vb.Append(k % 1000)
				k++
			}
		}
	case *array.Float64Builder:
		for r := 0; r < rows; r++ {
			b.Append(true)
			for e := 0; e < perRow; e++ {
				vb.Append(float64(k%1000) / 2)
				k++
			}
		}
	case *array.StringBuilder:
		for r := 0; r < rows; r++ {
			b.Append(true)
			for e := 0; e < perRow; e++ {
				vb.Append(words[k%int64(len(words))])
				k++
			}
		}
	default:
		return nil, fmt.Errorf("unsupported element type %s", elem)
	}
	return columnar.NewList(b.NewArray())
}

func elementType(name string) columnar.DataType {
	switch name {
	case "int64":
		return columnar.Integer
	case "float64":
		return columnar.Float
	case "string":
		return columnar.String
	default:
		panic(fmt.Sprintf("unknown element type %q", name))
	}
}

func addRunCommand(app *kingpin.Application) {
	cmd := &runCommand{}
	run := app.Command("run", "Benchmark operations over a synthetic block of array data.").Action(cmd.run)
	cmd.ops = run.Arg("operation", "Operations to run. Defaults to all registered operations.").Strings()
	cmd.rows = run.Flag("rows", "Number of array rows in the block.").Default("10000").Int()
	cmd.elements = run.Flag("elements", "Number of elements per row.").Default("16").Int()
	cmd.valueType = run.Flag("type", "Element type of the block.").Default("int64").Enum("int64", "float64", "string")
	cmd.iterations = run.Flag("iterations", "Number of times to run each operation.").Default("10").Int()
	cmd.verbose = run.Flag("verbose", "Enable debug logging.").Bool()
}
