// Package domain define os tipos e contratos do serviço de autenticação.
//
// Este pacote não depende de net/http nem de implementações concretas.
package domain
