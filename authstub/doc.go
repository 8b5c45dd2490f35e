// Package authstub é o serviço de autenticação local usado como alvo da carga.
//
// Visão geral (camadas):
//
//   - domain: usuário, validação de entrada, erros e contratos de admissão
//   - application: casos de uso (register/login, decisão de admissão) sem net/http
//   - infra: stores (memória/Redis), bcrypt, JWT, token bucket, semáforo
//   - httpapi: rotas, respostas JSON, middlewares de admissão e métricas
//
// Rotas:
//
//	POST /api/auth/register  201 | 400 | 409
//	POST /api/auth/login     200 | 400 | 401
//	POST /api/auth/logout    200 | 401
//	GET  /healthz
//	GET  /metrics
package authstub
