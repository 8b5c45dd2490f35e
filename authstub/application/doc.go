// Package application contém os casos de uso do serviço de autenticação
// (register/login) e a decisão de admissão (rate limit e concorrência).
//
// Não conhece net/http. Ex.: Admission.Decide(key) retorna uma Decision.
package application
