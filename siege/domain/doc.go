// Package domain define o payload, o resultado de cada tarefa e os contratos
// usados pelo Runner.
//
// Nada aqui conhece net/http.
package domain
