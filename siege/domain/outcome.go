package domain

import "context"

// Outcome é o resultado de uma tarefa.
//
// Err != nil significa falha de rede em uma das chamadas; nesse caso os status
// não têm significado. Status HTTP fora de 2xx não são erro.
type Outcome struct {
	Index          int
	RegisterStatus int
	LoginStatus    int
	Err            error
}

// AuthClient faz as duas chamadas do serviço de autenticação e devolve o
// status HTTP recebido.
type AuthClient interface {
	Register(ctx context.Context, p Payload) (int, error)
	Login(ctx context.Context, p Payload) (int, error)
}

// Reporter recebe o resultado de cada tarefa assim que ela termina.
// Implementações precisam aceitar chamadas concorrentes.
type Reporter interface {
	Report(Outcome)
}
