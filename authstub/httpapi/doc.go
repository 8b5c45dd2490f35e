// Package httpapi expõe o serviço de autenticação via net/http: rotas JSON,
// middlewares de admissão (rate limit e concorrência) e métricas Prometheus.
//
// Fluxo de uma requisição:
//
//  1. Instrument registra status e latência por rota
//  2. Admission extrai a chave do cliente e aplica token bucket (429) e vagas (503)
//  3. o handler decodifica o JSON e chama application.AuthService
//  4. erros de domínio viram 400/401/409; o resto vira 500
package httpapi
