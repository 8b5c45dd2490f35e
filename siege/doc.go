// Package siege dispara a carga fixa de register+login contra o serviço de
// autenticação local.
//
// Camadas (mesma divisão do middleware do gateway):
//
//   - domain: payload, resultado por tarefa e contratos (sem net/http)
//   - application: Runner, que faz o fan-out das tarefas e espera todas
//   - infra: cliente HTTP (JSON) e reporter de console
//   - siege (este pacote): constantes da carga e wiring
//
// A carga é fixa: Tasks tarefas concorrentes, cada uma com register seguido de
// login, sem retry e sem timeout.
package siege
