// Package mock provides test doubles for the ai interfaces.
// Mocks default to deterministic behavior (FNV-seeded unit vectors,
// fixed summaries) and support behavior injection via function fields.
package mock
