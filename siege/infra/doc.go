// Package infra contém as implementações concretas dos contratos do pacote
// domain:
//   - HTTPClient: AuthClient via net/http (JSON POST)
//   - ConsoleReporter: imprime uma linha por tarefa
package infra
