package main

import (
	"fmt"
	"os"

	"riscvsim/asm"
	"riscvsim/machine"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "riscvsim",
		Short: "Cycle-accurate simulator for a small RISC-V-like integer ISA",
	}
	root.AddCommand(runCmd(), disasmCmd())
	return root
}

func runCmd() *cobra.Command {
	var model string
	var memBytes int
	var trace bool

	cmd := &cobra.Command{
		Use:   "run [program.asm]",
		Short: "Assemble and execute a program on the selected machine model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := asm.Parse(string(source))
			if err != nil {
				return fmt.Errorf("assemble %s: %w", args[0], err)
			}

			cycles, st, err := runModel(model, memBytes, prog, trace)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			fmt.Printf("model=%s cycles=%d\n", model, cycles)
			printRegisters(st)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "m3", "machine model to run: m1, m2, or m3")
	cmd.Flags().IntVar(&memBytes, "memory", 4096, "memory size in bytes")
	cmd.Flags().BoolVar(&trace, "trace", false, "print a per-cycle trace (m3 only)")
	return cmd
}

func runModel(model string, memBytes int, prog *machine.Program, trace bool) (int64, *machine.State, error) {
	switch model {
	case "m1":
		st := machine.NewState(memBytes)
		cycles, err := machine.RunM1(prog, st)
		return cycles, st, err
	case "m2":
		st := machine.NewState(memBytes)
		cycles, err := machine.RunM2(prog, st)
		return cycles, st, err
	case "m3":
		m := machine.NewMachine3(memBytes)
		if trace {
			m.Trace = os.Stdout
		}
		cycles, err := m.Run(prog)
		return cycles, m.State(), err
	default:
		return 0, nil, fmt.Errorf("unknown model %q (want m1, m2, or m3)", model)
	}
}

func disasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm [program.asm]",
		Short: "Assemble a program and print its decoded instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := asm.Parse(string(source))
			if err != nil {
				return fmt.Errorf("assemble %s: %w", args[0], err)
			}
			for i, instr := range prog.Instructions {
				fmt.Printf("%04d: %s\n", i*4, instr.String())
			}
			return nil
		},
	}
}

func printRegisters(st *machine.State) {
	for _, r := range []machine.Register{
		machine.ZERO, machine.RA, machine.SP, machine.GP, machine.TP,
		machine.T0, machine.T1, machine.T2, machine.T3, machine.T4, machine.T5, machine.T6,
		machine.S0, machine.S1, machine.S2, machine.S3, machine.S4, machine.S5,
		machine.S6, machine.S7, machine.S8, machine.S9, machine.S10, machine.S11,
		machine.A0, machine.A1, machine.A2, machine.A3, machine.A4, machine.A5, machine.A6, machine.A7,
	} {
		v := st.Registers.Get(r)
		if v != 0 {
			fmt.Printf("  %s = %d\n", r, v)
		}
	}
}
