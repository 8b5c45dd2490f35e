// Package application contém o caso de uso da carga: disparar as tarefas e
// esperar todas terminarem.
//
// Depende apenas do pacote domain.
package application
