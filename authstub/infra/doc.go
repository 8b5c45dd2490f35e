// Package infra contém as implementações concretas dos contratos do pacote
// domain:
//   - MemoryUserStore / RedisUserStore: persistência de usuários
//   - BcryptHasher: hash de senha (golang.org/x/crypto/bcrypt)
//   - JWTIssuer: token de sessão HS256 (github.com/golang-jwt/jwt/v5)
//   - LimiterStore: token bucket por chave (golang.org/x/time/rate)
//   - ChanPool: semáforo para limite de concorrência
//   - MemoryAdmissionStats / RedisAdmissionStats: contagem de decisões de admissão
package infra
