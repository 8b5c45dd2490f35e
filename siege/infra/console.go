package infra

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"auth-siege/siege/domain"
)

// ConsoleReporter escreve "register: <code> | login: <code>" por tarefa em out
// e loga as falhas de rede como "Request failed: <err>".
type ConsoleReporter struct {
	mu     sync.Mutex
	out    io.Writer
	logger *log.Logger
}

// NewConsoleReporter: out nil usa os.Stdout, logger nil usa log.Default().
func NewConsoleReporter(out io.Writer, logger *log.Logger) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ConsoleReporter{out: out, logger: logger}
}

func (r *ConsoleReporter) Report(o domain.Outcome) {
	// uma linha por vez, sem intercalar entre goroutines (out e logger podem
	// ser o mesmo stdout)
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.Err != nil {
		r.logger.Printf("Request failed: %v", o.Err)
		return
	}
	_, _ = fmt.Fprintf(r.out, "register: %d | login: %d\n", o.RegisterStatus, o.LoginStatus)
}
