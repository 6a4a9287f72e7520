package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/observability"
)

// handleCrash restores the terminal, records the panic and exits
func handleCrash(screen tcell.Screen, r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state before printing
	screen.Fini()
	os.Stdout.Sync()

	stack := debug.Stack()
	observability.GetLogger().Error("Crash", zap.Any("panic", r), zap.ByteString("stack", stack))
	observability.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	os.Exit(1)
}

// recoverIn is deferred at the top of every goroutine that touches the screen
func recoverIn(screen tcell.Screen) {
	if r := recover(); r != nil {
		handleCrash(screen, r)
	}
}
