package console

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
)

// Monitor is an interactive command loop over a Bus: breakpoints (by
// address, though nothing currently consults the set beyond bookkeeping),
// single-step, memory/stack dumps, and PPU status, entered via -monitor.
// It exists for the same kind of ad-hoc debugging session a hardware
// monitor ROM would give you, not for anything a spec scenario drives.
type Monitor struct {
	bus *Bus
}

func NewMonitor(b *Bus) *Monitor {
	return &Monitor{bus: b}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Printf(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// Run drives the monitor's command loop until the user quits.
func (mon *Monitor) Run(ctx context.Context) {
	b := mon.bus

	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", b.cpu)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - cleear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)step - step the cpu one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)memory - select a memory range to display")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(I)instruction - show instruction memory locations")
		fmt.Println("(P)C - set program counter")
		fmt.Println("PP(U) - show PPU status")
		fmt.Println("(Q)uit - shutdown the gintentdo")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			b.cpu.SetPC(readAddress("Set PC to what address (eg: 0400)?: "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)

			b.Run(cctx)
		case 's', 'S':
			b.cpu.Step()
			for i := 0; i < b.cpu.Cycles()*3; i++ {
				b.ppu.Tick()
			}
		case 't', 'T':
			fmt.Println()
			i := 0
			for {
				m := b.cpu.StackAddr() + uint16(i)
				fmt.Printf("0x%04x: 0x%02x ", m, b.Read(m))
				if m == 0x01ff || i == 2 {
					break
				}
				i += 1
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Printf("\n%s\n\n", b.cpu.Inst())
		case 'u', 'U':
			fmt.Println(b.ppu)
		case 'e', 'E':
			b.cpu.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			i := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x += 1
				i += 1
			}
			fmt.Printf("\n\n")
		}
	}
}
