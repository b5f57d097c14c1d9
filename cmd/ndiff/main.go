// Package main provides the ndiff CLI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/ndiff/autodiff"
	"github.com/born-ml/ndiff/tensor"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ndiff",
		Short:         "Trace, compile and differentiate scalar functions",
		Long:          `ndiff traces a built-in function once, compiles its graph and evaluates outputs and full Jacobians on batches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	var seed uint64
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "Seed for the placeholder values used while tracing")

	compile := func(name string) (*autodiff.CompiledFunction, error) {
		b, err := lookup(name)
		if err != nil {
			return nil, err
		}
		return autodiff.Compile(b.fn, b.numInputs,
			autodiff.WithLogger(klog.Background().WithName(name)),
			autodiff.WithSeed(seed))
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newListCmd(),
		newGraphCmd(compile),
		newEvalCmd(compile),
	)
	return rootCmd
}

type compileFunc func(name string) (*autodiff.CompiledFunction, error)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ndiff %s\n", version)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in functions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range builtinNames() {
				b := builtins[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d input(s)  %s\n", name, b.numInputs, b.help)
			}
		},
	}
}

func newGraphCmd(compile compileFunc) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph <function>",
		Short: "Print the compiled graph of a built-in function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := compile(args[0])
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), format, f.Export())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	return cmd
}

// evalResult is what eval prints.
type evalResult struct {
	Outputs  [][]float64   `json:"outputs" yaml:"outputs,flow"`
	Jacobian [][][]float64 `json:"jacobian" yaml:"jacobian,flow"`
}

func newEvalCmd(compile compileFunc) *cobra.Command {
	var (
		format string
		inputs []string
	)
	cmd := &cobra.Command{
		Use:   "eval <function>",
		Short: "Evaluate a built-in function and its Jacobian on a batch",
		Long: `Evaluate a built-in function on a batch. Each --input flag is one batch
row; functions with several inputs take comma-separated values.

  ndiff eval sigmoid --input 0.75 --input -1
  ndiff eval polar --input 2,0.7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := compile(args[0])
			if err != nil {
				return err
			}
			batch, err := parseBatch(inputs, f.NumInputs())
			if err != nil {
				return err
			}

			out, err := f.Forward(batch)
			if err != nil {
				return fmt.Errorf("forward: %w", err)
			}
			jac, err := f.Backward()
			if err != nil {
				return fmt.Errorf("backward: %w", err)
			}
			return write(cmd.OutOrStdout(), format, toResult(out, jac))
		},
	}
	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Batch row, comma-separated when the function has several inputs (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// parseBatch turns one string per row into a [rows, numInputs] tensor.
func parseBatch(rows []string, numInputs int) (*tensor.RawTensor, error) {
	data := make([]float64, 0, len(rows)*numInputs)
	for i, row := range rows {
		fields := strings.Split(row, ",")
		if len(fields) != numInputs {
			return nil, fmt.Errorf("input %d: want %d comma-separated values, got %d", i, numInputs, len(fields))
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}
			data = append(data, v)
		}
	}
	return tensor.FromSlice(data, tensor.Shape{len(rows), numInputs}, tensor.CPU)
}

func toResult(out, jac *tensor.RawTensor) evalResult {
	shape := jac.Shape() // [batch, outputs, inputs]
	res := evalResult{
		Outputs:  make([][]float64, shape[0]),
		Jacobian: make([][][]float64, shape[0]),
	}
	for s := 0; s < shape[0]; s++ {
		res.Outputs[s] = make([]float64, shape[1])
		res.Jacobian[s] = make([][]float64, shape[1])
		for o := 0; o < shape[1]; o++ {
			res.Outputs[s][o] = out.At(s, o)
			res.Jacobian[s][o] = make([]float64, shape[2])
			for i := 0; i < shape[2]; i++ {
				res.Jacobian[s][o][i] = jac.At(s, o, i)
			}
		}
	}
	return res
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
